package batch

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/career_coach/internal/biz"
	"github.com/iWorld-y/career_coach/pkg/genai"
	"github.com/iWorld-y/career_coach/pkg/search"
)

type stubRepo struct {
	industries []string
	listErr    error
	saveErr    error
	upserts    []*biz.Insight
}

func (r *stubRepo) FindByIndustry(ctx context.Context, industry string) (*biz.Insight, error) {
	return nil, errors.New("not used")
}

func (r *stubRepo) Upsert(ctx context.Context, insight *biz.Insight) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.upserts = append(r.upserts, insight)
	return nil
}

func (r *stubRepo) ListIndustries(ctx context.Context) ([]string, error) {
	return r.industries, r.listErr
}

type stubGen struct {
	failFor   map[string]error
	headlines map[string][]string
	calls     []string
}

func (g *stubGen) IndustryOutlook(ctx context.Context, industry string, headlines []string) (*genai.Outlook, error) {
	g.calls = append(g.calls, industry)
	if g.headlines == nil {
		g.headlines = map[string][]string{}
	}
	g.headlines[industry] = headlines
	if err := g.failFor[industry]; err != nil {
		return nil, err
	}
	return &genai.Outlook{
		SalaryRanges:      []genai.SalaryRange{},
		GrowthRate:        3.5,
		DemandLevel:       genai.DefaultDemandLevel,
		TopSkills:         []string{"go"},
		MarketOutlook:     genai.DefaultMarketOutlook,
		KeyTrends:         []string{},
		RecommendedSkills: []string{},
	}, nil
}

type stubSearcher struct {
	resp *search.Response
	err  error
	reqs []*search.Request
}

func (s *stubSearcher) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	s.reqs = append(s.reqs, req)
	return s.resp, s.err
}

func testPolicy() biz.RefreshPolicy {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return biz.RefreshPolicy{TTL: 7 * 24 * time.Hour, Now: func() time.Time { return now }}
}

func quietLogger() log.Logger {
	return log.NewStdLogger(io.Discard)
}

func TestRunOnce_FailedIndustryIsSkipped(t *testing.T) {
	repo := &stubRepo{industries: []string{"finance", "healthcare", "tech"}}
	gen := &stubGen{failFor: map[string]error{"healthcare": genai.ErrGenerationFailed}}
	r := NewRefresher(repo, gen, nil, nil, testPolicy(), quietLogger())

	err := r.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"finance", "healthcare", "tech"}, gen.calls)
	require.Len(t, repo.upserts, 2)
	assert.Equal(t, "finance", repo.upserts[0].Industry)
	assert.Equal(t, "tech", repo.upserts[1].Industry)
}

func TestRunOnce_StampsFreshnessWindow(t *testing.T) {
	policy := testPolicy()
	repo := &stubRepo{industries: []string{"tech"}}
	r := NewRefresher(repo, &stubGen{}, nil, nil, policy, quietLogger())

	require.NoError(t, r.RunOnce(context.Background()))

	require.Len(t, repo.upserts, 1)
	rec := repo.upserts[0]
	assert.Equal(t, policy.Now(), rec.LastUpdated)
	assert.Equal(t, policy.Now().Add(policy.TTL), rec.NextUpdate)
}

func TestRunOnce_ListFailureAborts(t *testing.T) {
	repo := &stubRepo{listErr: errors.New("db down")}
	r := NewRefresher(repo, &stubGen{}, nil, nil, testPolicy(), quietLogger())

	err := r.RunOnce(context.Background())

	assert.ErrorContains(t, err, "list industries")
}

func TestRunOnce_PersistenceFailureAborts(t *testing.T) {
	repo := &stubRepo{industries: []string{"tech", "finance"}, saveErr: errors.New("db down")}
	gen := &stubGen{}
	r := NewRefresher(repo, gen, nil, nil, testPolicy(), quietLogger())

	err := r.RunOnce(context.Background())

	assert.ErrorContains(t, err, "persist insight")
	assert.Equal(t, []string{"tech"}, gen.calls)
}

func TestRunOnce_HeadlinesGroundGeneration(t *testing.T) {
	repo := &stubRepo{industries: []string{"tech"}}
	gen := &stubGen{}
	searcher := &stubSearcher{resp: &search.Response{Results: []search.Result{
		{Title: "AI hiring surges"},
		{Title: "Cloud spend cools"},
	}}}
	r := NewRefresher(repo, gen, searcher, nil, testPolicy(), quietLogger())

	require.NoError(t, r.RunOnce(context.Background()))

	assert.Equal(t, []string{"AI hiring surges", "Cloud spend cools"}, gen.headlines["tech"])
	require.Len(t, searcher.reqs, 1)
	assert.Equal(t, "tech industry market trends", searcher.reqs[0].Query)
	assert.Equal(t, "2025-05-25", searcher.reqs[0].StartDate)
	assert.Equal(t, "2025-06-01", searcher.reqs[0].EndDate)
}

func TestRunOnce_SearchFailureStillRefreshes(t *testing.T) {
	repo := &stubRepo{industries: []string{"tech"}}
	gen := &stubGen{}
	searcher := &stubSearcher{err: errors.New("provider down")}
	r := NewRefresher(repo, gen, searcher, nil, testPolicy(), quietLogger())

	require.NoError(t, r.RunOnce(context.Background()))

	assert.Nil(t, gen.headlines["tech"])
	require.Len(t, repo.upserts, 1)
}
