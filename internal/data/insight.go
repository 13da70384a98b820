package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/lib/pq"

	"github.com/iWorld-y/career_coach/internal/biz"
	"github.com/iWorld-y/career_coach/pkg/genai"
)

type insightRepo struct {
	data *Data
	log  *log.Helper
}

// NewInsightRepo creates the Postgres-backed insight repository.
func NewInsightRepo(data *Data, logger log.Logger) biz.InsightRepo {
	return &insightRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *insightRepo) FindByIndustry(ctx context.Context, industry string) (*biz.Insight, error) {
	rec := &biz.Insight{Industry: industry}
	var salaryRanges []byte

	err := r.data.db.QueryRowContext(ctx, `
		SELECT salary_ranges, growth_rate, demand_level, top_skills,
		       market_outlook, key_trends, recommended_skills, last_updated, next_update
		FROM industry_insights WHERE industry = $1`, industry).
		Scan(&salaryRanges, &rec.GrowthRate, &rec.DemandLevel, pq.Array(&rec.TopSkills),
			&rec.MarketOutlook, pq.Array(&rec.KeyTrends), pq.Array(&rec.RecommendedSkills),
			&rec.LastUpdated, &rec.NextUpdate)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("INSIGHT_NOT_FOUND", "no insight for industry")
	}
	if err != nil {
		return nil, fmt.Errorf("find insight %q: %w", industry, err)
	}

	if err := json.Unmarshal(salaryRanges, &rec.SalaryRanges); err != nil {
		return nil, fmt.Errorf("decode salary ranges for %q: %w", industry, err)
	}
	if rec.SalaryRanges == nil {
		rec.SalaryRanges = []genai.SalaryRange{}
	}
	return rec, nil
}

func (r *insightRepo) Upsert(ctx context.Context, insight *biz.Insight) error {
	return upsertInsight(ctx, r.data.db, insight)
}

func (r *insightRepo) ListIndustries(ctx context.Context) ([]string, error) {
	rows, err := r.data.db.QueryContext(ctx, `SELECT industry FROM industry_insights ORDER BY industry`)
	if err != nil {
		return nil, fmt.Errorf("list industries: %w", err)
	}
	defer rows.Close()

	var industries []string
	for rows.Next() {
		var industry string
		if err := rows.Scan(&industry); err != nil {
			return nil, fmt.Errorf("scan industry: %w", err)
		}
		industries = append(industries, industry)
	}
	return industries, rows.Err()
}

// execer lets the insight upsert run on either the pool or a transaction, so
// the profile update can include it atomically.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertInsight(ctx context.Context, ex execer, insight *biz.Insight) error {
	salaryRanges, err := json.Marshal(insight.SalaryRanges)
	if err != nil {
		return fmt.Errorf("encode salary ranges for %q: %w", insight.Industry, err)
	}

	_, err = ex.ExecContext(ctx, `
		INSERT INTO industry_insights (
			industry, salary_ranges, growth_rate, demand_level, top_skills,
			market_outlook, key_trends, recommended_skills, last_updated, next_update
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (industry) DO UPDATE SET
			salary_ranges = EXCLUDED.salary_ranges,
			growth_rate = EXCLUDED.growth_rate,
			demand_level = EXCLUDED.demand_level,
			top_skills = EXCLUDED.top_skills,
			market_outlook = EXCLUDED.market_outlook,
			key_trends = EXCLUDED.key_trends,
			recommended_skills = EXCLUDED.recommended_skills,
			last_updated = EXCLUDED.last_updated,
			next_update = EXCLUDED.next_update`,
		insight.Industry, salaryRanges, insight.GrowthRate, insight.DemandLevel,
		pq.Array(insight.TopSkills), insight.MarketOutlook, pq.Array(insight.KeyTrends),
		pq.Array(insight.RecommendedSkills), insight.LastUpdated, insight.NextUpdate)
	if err != nil {
		return fmt.Errorf("upsert insight %q: %w", insight.Industry, err)
	}
	return nil
}
