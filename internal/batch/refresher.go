// Package batch regenerates every stored industry insight on a schedule,
// independent of user traffic.
package batch

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/career_coach/internal/biz"
	"github.com/iWorld-y/career_coach/pkg/search"
)

const headlineCount = 5

// Refresher walks every known industry and rewrites its insight record.
type Refresher struct {
	repo     biz.InsightRepo
	gen      biz.OutlookGenerator
	searcher search.Searcher // nil when no provider is configured
	limiter  *rate.Limiter
	policy   biz.RefreshPolicy
	log      *log.Helper
}

// NewRefresher wires the batch refresher. searcher may be nil; the run then
// generates without headline grounding.
func NewRefresher(repo biz.InsightRepo, gen biz.OutlookGenerator, searcher search.Searcher, limiter *rate.Limiter, policy biz.RefreshPolicy, logger log.Logger) *Refresher {
	return &Refresher{
		repo:     repo,
		gen:      gen,
		searcher: searcher,
		limiter:  limiter,
		policy:   policy,
		log:      log.NewHelper(logger),
	}
}

// RunOnce refreshes every industry sequentially. A failed industry is logged
// and skipped so one bad generation never starves the rest of the run; only
// listing or persistence errors abort.
func (r *Refresher) RunOnce(ctx context.Context) error {
	industries, err := r.repo.ListIndustries(ctx)
	if err != nil {
		return fmt.Errorf("list industries: %w", err)
	}
	r.log.WithContext(ctx).Infof("refresh run started, %d industries", len(industries))

	refreshed := 0
	for _, industry := range industries {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		headlines := r.headlines(ctx, industry)
		outlook, err := r.gen.IndustryOutlook(ctx, industry, headlines)
		if err != nil {
			r.log.WithContext(ctx).Warnf("skipping industry %q: %v", industry, err)
			continue
		}

		now := r.policy.Now()
		if err := r.repo.Upsert(ctx, biz.InsightFromOutlook(industry, outlook, now, r.policy.TTL)); err != nil {
			return fmt.Errorf("persist insight %q: %w", industry, err)
		}
		refreshed++
	}

	r.log.WithContext(ctx).Infof("refresh run finished, %d/%d refreshed", refreshed, len(industries))
	return nil
}

// headlines pulls recent market headlines for the industry. Search failures
// only cost grounding, never the refresh itself.
func (r *Refresher) headlines(ctx context.Context, industry string) []string {
	if r.searcher == nil {
		return nil
	}

	now := r.policy.Now()
	resp, err := r.searcher.Search(ctx, &search.Request{
		Query:      fmt.Sprintf("%s industry market trends", industry),
		MaxResults: headlineCount,
		StartDate:  now.AddDate(0, 0, -7).Format("2006-01-02"),
		EndDate:    now.Format("2006-01-02"),
	})
	if err != nil {
		r.log.WithContext(ctx).Warnf("headline search failed for %q: %v", industry, err)
		return nil
	}
	return resp.Titles(headlineCount)
}
