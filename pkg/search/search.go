// Package search defines the provider-neutral interface used to pull recent
// market headlines that ground industry outlook generation.
package search

import "context"

// Searcher is implemented by each headline provider.
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request is a provider-neutral headline query.
type Request struct {
	Query      string
	MaxResults int
	StartDate  string // Format: YYYY-MM-DD
	EndDate    string // Format: YYYY-MM-DD
}

// Response holds the matched headlines.
type Response struct {
	Results []Result
}

// Result is a single headline.
type Result struct {
	Title         string
	URL           string
	Content       string
	Score         float64
	PublishedDate string
}

// Titles flattens a response into plain headline strings, capped at max.
func (r *Response) Titles(max int) []string {
	titles := make([]string, 0, max)
	for _, res := range r.Results {
		if res.Title == "" {
			continue
		}
		titles = append(titles, res.Title)
		if len(titles) >= max {
			break
		}
	}
	return titles
}
