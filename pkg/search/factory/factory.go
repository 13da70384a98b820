// Package factory builds the configured headline Searcher.
package factory

import (
	"fmt"

	"github.com/iWorld-y/career_coach/pkg/search"
	"github.com/iWorld-y/career_coach/pkg/searxng"
	"github.com/iWorld-y/career_coach/pkg/tavily"
)

// Config selects and configures a headline provider.
type Config struct {
	Provider       string // "tavily", "searxng"; empty disables enrichment
	TavilyAPIKey   string
	SearXNGBaseURL string
	SearXNGTimeout int
}

// NewSearcher creates the configured Searcher. A nil Searcher with nil error
// means headline enrichment is disabled.
func NewSearcher(cfg Config) (search.Searcher, error) {
	switch cfg.Provider {
	case "":
		return nil, nil

	case "tavily":
		if cfg.TavilyAPIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.TavilyAPIKey), nil

	case "searxng":
		if cfg.SearXNGBaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(cfg.SearXNGBaseURL, cfg.SearXNGTimeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", cfg.Provider)
	}
}
