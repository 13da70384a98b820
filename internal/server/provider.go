package server

import (
	"context"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/career_coach/internal/conf"
	"github.com/iWorld-y/career_coach/internal/logger"
	"github.com/iWorld-y/career_coach/pkg/genai"
	"github.com/iWorld-y/career_coach/pkg/search"
	"github.com/iWorld-y/career_coach/pkg/search/factory"
)

// NewCoachLogger builds the logrus logger for the generation pipeline.
func NewCoachLogger(c *conf.Coach) (*logrus.Logger, error) {
	level, file := "info", ""
	if c != nil && c.Log != nil {
		level, file = c.Log.Level, c.Log.File
	}
	return logger.New(level, file)
}

// NewChatModel connects to the configured OpenAI-compatible endpoint.
func NewChatModel(c *conf.Coach) (genai.ChatModel, error) {
	return openai.NewChatModel(context.Background(), &openai.ChatModelConfig{
		BaseURL: c.Llm.BaseUrl,
		APIKey:  c.Llm.ApiKey,
		Model:   c.Llm.Model,
	})
}

// NewGenAIClient builds the shared generator with the configured retry
// posture.
func NewGenAIClient(cm genai.ChatModel, c *conf.Coach, l *logrus.Logger) *genai.Client {
	opts := []genai.Option{genai.WithLogger(l)}
	if c != nil && c.Refresh != nil {
		if c.Refresh.RetryBackoff != "" {
			if d, err := time.ParseDuration(c.Refresh.RetryBackoff); err == nil && d > 0 {
				opts = append(opts, genai.WithBackoff(d))
			}
		}
		if c.Refresh.MaxRetries > 0 {
			opts = append(opts, genai.WithMaxRetries(int(c.Refresh.MaxRetries)))
		}
	}
	return genai.NewClient(cm, opts...)
}

// NewSearcher builds the optional headline provider. Nil means the batch
// refresher generates without headline grounding.
func NewSearcher(c *conf.Coach) (search.Searcher, error) {
	cfg := factory.Config{}
	if c != nil && c.Search != nil {
		cfg.Provider = c.Search.Provider
		if c.Search.Tavily != nil {
			cfg.TavilyAPIKey = c.Search.Tavily.ApiKey
		}
		if c.Search.Searxng != nil {
			cfg.SearXNGBaseURL = c.Search.Searxng.BaseUrl
			cfg.SearXNGTimeout = int(c.Search.Searxng.Timeout)
		}
	}
	return factory.NewSearcher(cfg)
}

// NewRateLimiter paces batch generation to the configured requests per
// minute. Zero means unpaced.
func NewRateLimiter(c *conf.Coach) *rate.Limiter {
	if c == nil || c.Refresh == nil || c.Refresh.Rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(c.Refresh.Rpm)), 1)
}
