// Command refresher runs one full insight refresh and exits. It is the
// out-of-process alternative to the in-server cron schedule, meant for
// external schedulers and manual reruns.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/career_coach/internal/batch"
	"github.com/iWorld-y/career_coach/internal/biz"
	"github.com/iWorld-y/career_coach/internal/conf"
	"github.com/iWorld-y/career_coach/internal/config"
	"github.com/iWorld-y/career_coach/internal/data"
	"github.com/iWorld-y/career_coach/internal/server"
)

var flagconf string

func init() {
	flag.StringVar(&flagconf, "conf", "configs/refresher.yaml", "config path, eg: -conf refresher.yaml")
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.name", "career_coach_refresher",
	)
	helper := log.NewHelper(logger)

	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		helper.Fatalf("load config: %v", err)
	}

	// The providers are shared with the server; translate the standalone
	// config into their shapes.
	dataConf := &conf.Data{Database: &conf.Database{
		Driver: cfg.DB.Driver,
		Source: cfg.DB.Source,
	}}
	coachConf := &conf.Coach{
		Llm: &conf.LLM{
			BaseUrl: cfg.LLM.BaseURL,
			ApiKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
		},
		Refresh: &conf.Refresh{
			Ttl:          cfg.Refresh.TTL,
			RetryBackoff: cfg.Refresh.RetryBackoff,
			MaxRetries:   int32(cfg.Refresh.MaxRetries),
			Rpm:          int32(cfg.Refresh.RPM),
		},
		Search: &conf.Search{
			Provider: cfg.Search.Provider,
			Tavily:   &conf.Tavily{ApiKey: cfg.Search.Tavily.APIKey},
			Searxng: &conf.SearXNG{
				BaseUrl: cfg.Search.SearXNG.BaseURL,
				Timeout: int32(cfg.Search.SearXNG.Timeout),
			},
		},
		Log: &conf.Log{Level: cfg.Log.Level, File: cfg.Log.File},
	}

	d, cleanup, err := data.NewData(dataConf, logger)
	if err != nil {
		helper.Fatalf("open database: %v", err)
	}
	defer cleanup()

	coachLogger, err := server.NewCoachLogger(coachConf)
	if err != nil {
		helper.Fatalf("init logger: %v", err)
	}
	chatModel, err := server.NewChatModel(coachConf)
	if err != nil {
		helper.Fatalf("init chat model: %v", err)
	}
	client := server.NewGenAIClient(chatModel, coachConf, coachLogger)

	searcher, err := server.NewSearcher(coachConf)
	if err != nil {
		helper.Fatalf("init searcher: %v", err)
	}

	refresher := batch.NewRefresher(
		data.NewInsightRepo(d, logger),
		client,
		searcher,
		server.NewRateLimiter(coachConf),
		biz.NewRefreshPolicy(coachConf),
		logger,
	)

	if err := refresher.RunOnce(context.Background()); err != nil {
		helper.Fatalf("refresh run failed: %v", err)
	}
}
