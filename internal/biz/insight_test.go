package biz

import (
	"context"
	"errors"
	"testing"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/career_coach/pkg/genai"
)

const testTTL = 7 * 24 * time.Hour

// testClock is a settable clock for freshness tests.
type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newInsightFixture(gen *fakeOutlookGen) (*InsightUseCase, *memInsightRepo, *testClock) {
	repo := newMemInsightRepo()
	clock := &testClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	uc := NewInsightUseCase(repo, gen, RefreshPolicy{TTL: testTTL, Now: clock.Now}, log.DefaultLogger)
	return uc, repo, clock
}

func TestGetByIndustry_FirstCallCreatesRecord(t *testing.T) {
	gen := &fakeOutlookGen{fn: func(string) (*genai.Outlook, error) { return sampleOutlook(), nil }}
	uc, repo, clock := newInsightFixture(gen)

	rec, err := uc.GetByIndustry(context.Background(), "tech-software")
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, repo.upserts)
	assert.Equal(t, "tech-software", rec.Industry)
	assert.Equal(t, clock.now, rec.LastUpdated)
	assert.Equal(t, clock.now.Add(testTTL), rec.NextUpdate)
	assert.Equal(t, "HIGH", rec.DemandLevel)
}

func TestGetByIndustry_FreshHitDoesNotRegenerate(t *testing.T) {
	gen := &fakeOutlookGen{fn: func(string) (*genai.Outlook, error) { return sampleOutlook(), nil }}
	uc, repo, clock := newInsightFixture(gen)

	first, err := uc.GetByIndustry(context.Background(), "finance")
	require.NoError(t, err)

	// One second before expiry is still fresh.
	clock.now = first.NextUpdate.Add(-time.Second)
	second, err := uc.GetByIndustry(context.Background(), "finance")
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, repo.upserts)
	assert.Equal(t, first.LastUpdated, second.LastUpdated)
	assert.Equal(t, first.NextUpdate, second.NextUpdate)
}

func TestGetByIndustry_StaleRecordRegenerates(t *testing.T) {
	gen := &fakeOutlookGen{fn: func(string) (*genai.Outlook, error) { return sampleOutlook(), nil }}
	uc, repo, clock := newInsightFixture(gen)

	first, err := uc.GetByIndustry(context.Background(), "finance")
	require.NoError(t, err)

	// Exactly at NextUpdate the record counts as stale.
	clock.now = first.NextUpdate
	second, err := uc.GetByIndustry(context.Background(), "finance")
	require.NoError(t, err)

	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, 2, repo.upserts)
	assert.Equal(t, clock.now, second.LastUpdated)
	assert.Equal(t, clock.now.Add(testTTL), second.NextUpdate)
	assert.True(t, second.LastUpdated.After(first.LastUpdated))
}

func TestGetByIndustry_GenerationFailureSurfaces(t *testing.T) {
	gen := &fakeOutlookGen{fn: func(string) (*genai.Outlook, error) {
		return nil, genai.ErrGenerationFailed
	}}
	uc, repo, _ := newInsightFixture(gen)

	_, err := uc.GetByIndustry(context.Background(), "media")
	require.Error(t, err)
	assert.True(t, errors.Is(err, genai.ErrGenerationFailed))
	assert.Equal(t, "GENERATION_FAILED", kerrors.FromError(err).Reason)
	assert.Zero(t, repo.upserts)
}

func TestGetByIndustry_EmptyIndustryRejected(t *testing.T) {
	gen := &fakeOutlookGen{fn: func(string) (*genai.Outlook, error) { return sampleOutlook(), nil }}
	uc, _, _ := newInsightFixture(gen)

	_, err := uc.GetByIndustry(context.Background(), "")
	require.Error(t, err)
	assert.True(t, kerrors.IsBadRequest(err))
	assert.Zero(t, gen.calls)
}

func TestGetByIndustry_PersistenceFailureSurfaces(t *testing.T) {
	gen := &fakeOutlookGen{fn: func(string) (*genai.Outlook, error) { return sampleOutlook(), nil }}
	uc, repo, _ := newInsightFixture(gen)
	repo.saveErr = errors.New("connection refused")

	_, err := uc.GetByIndustry(context.Background(), "tech-software")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestInsightFromOutlook_TimestampInvariant(t *testing.T) {
	now := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	rec := InsightFromOutlook("finance", sampleOutlook(), now, testTTL)
	assert.Equal(t, rec.LastUpdated.Add(testTTL), rec.NextUpdate)
	assert.False(t, rec.Stale(now.Add(testTTL-time.Nanosecond)))
	assert.True(t, rec.Stale(now.Add(testTTL)))
}
