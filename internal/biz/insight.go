package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/career_coach/internal/conf"
	"github.com/iWorld-y/career_coach/pkg/genai"
)

// Insight is the persisted industry analysis for one industry key. At most
// one record exists per industry; NextUpdate is always LastUpdated + TTL.
type Insight struct {
	Industry          string
	SalaryRanges      []genai.SalaryRange
	GrowthRate        float64
	DemandLevel       string
	TopSkills         []string
	MarketOutlook     string
	KeyTrends         []string
	RecommendedSkills []string
	LastUpdated       time.Time
	NextUpdate        time.Time
}

// Stale reports whether the record needs regeneration at the given instant.
func (i *Insight) Stale(now time.Time) bool {
	return !now.Before(i.NextUpdate)
}

// InsightRepo persists insight records keyed by industry.
type InsightRepo interface {
	// FindByIndustry returns the record or a kratos NotFound error.
	FindByIndustry(ctx context.Context, industry string) (*Insight, error)
	// Upsert creates or overwrites the record for its industry.
	Upsert(ctx context.Context, insight *Insight) error
	// ListIndustries returns every industry that has a record.
	ListIndustries(ctx context.Context) ([]string, error)
}

// OutlookGenerator is the slice of the genai client the fetcher needs.
type OutlookGenerator interface {
	IndustryOutlook(ctx context.Context, industry string, headlines []string) (*genai.Outlook, error)
}

// RefreshPolicy fixes the freshness window and the clock. The clock is a
// field so tests can move time without sleeping.
type RefreshPolicy struct {
	TTL time.Duration
	Now func() time.Time
}

const defaultTTL = 7 * 24 * time.Hour

// NewRefreshPolicy builds the policy from config, defaulting to a weekly TTL.
func NewRefreshPolicy(c *conf.Coach) RefreshPolicy {
	ttl := defaultTTL
	if c != nil && c.Refresh != nil && c.Refresh.Ttl != "" {
		if d, err := time.ParseDuration(c.Refresh.Ttl); err == nil && d > 0 {
			ttl = d
		}
	}
	return RefreshPolicy{TTL: ttl, Now: time.Now}
}

// InsightFromOutlook stamps a normalized outlook into a persistable record.
func InsightFromOutlook(industry string, o *genai.Outlook, now time.Time, ttl time.Duration) *Insight {
	return &Insight{
		Industry:          industry,
		SalaryRanges:      o.SalaryRanges,
		GrowthRate:        o.GrowthRate,
		DemandLevel:       o.DemandLevel,
		TopSkills:         o.TopSkills,
		MarketOutlook:     o.MarketOutlook,
		KeyTrends:         o.KeyTrends,
		RecommendedSkills: o.RecommendedSkills,
		LastUpdated:       now,
		NextUpdate:        now.Add(ttl),
	}
}

// InsightUseCase serves up-to-date insight records, generating lazily on
// first request and whenever a record has gone stale.
type InsightUseCase struct {
	repo   InsightRepo
	gen    OutlookGenerator
	policy RefreshPolicy
	log    *log.Helper
}

// NewInsightUseCase creates the freshness-gated fetcher.
func NewInsightUseCase(repo InsightRepo, gen OutlookGenerator, policy RefreshPolicy, logger log.Logger) *InsightUseCase {
	return &InsightUseCase{repo: repo, gen: gen, policy: policy, log: log.NewHelper(logger)}
}

// GetByIndustry returns the insight record for industry, regenerating it when
// absent or stale. A fresh hit performs no write. Two concurrent calls on a
// stale key may both regenerate; the upsert is last-writer-wins and the store
// still converges to a single record per industry.
func (uc *InsightUseCase) GetByIndustry(ctx context.Context, industry string) (*Insight, error) {
	if industry == "" {
		return nil, errors.BadRequest("INDUSTRY_NOT_SET", "profile has no industry")
	}

	rec, err := uc.repo.FindByIndustry(ctx, industry)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	now := uc.policy.Now()
	if rec != nil && !rec.Stale(now) {
		return rec, nil
	}

	outlook, err := uc.gen.IndustryOutlook(ctx, industry, nil)
	if err != nil {
		return nil, errors.ServiceUnavailable("GENERATION_FAILED", "industry outlook generation failed").WithCause(err)
	}

	fresh := InsightFromOutlook(industry, outlook, now, uc.policy.TTL)
	if err := uc.repo.Upsert(ctx, fresh); err != nil {
		return nil, err
	}
	uc.log.WithContext(ctx).Infof("refreshed insight for industry %q, next update %s", industry, fresh.NextUpdate.Format(time.RFC3339))
	return fresh, nil
}
