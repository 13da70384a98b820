package data

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/career_coach/internal/biz"
)

type assessmentRepo struct {
	data *Data
	log  *log.Helper
}

// NewAssessmentRepo creates the Postgres-backed assessment repository.
func NewAssessmentRepo(data *Data, logger log.Logger) biz.AssessmentRepo {
	return &assessmentRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *assessmentRepo) SaveAssessment(ctx context.Context, a *biz.Assessment) (int, error) {
	questions, err := json.Marshal(a.Questions)
	if err != nil {
		return 0, fmt.Errorf("encode quiz questions: %w", err)
	}

	var id int
	err = r.data.db.QueryRowContext(ctx, `
		INSERT INTO assessments (user_id, quiz_score, questions, category, improvement_tip)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		a.UserID, a.QuizScore, questions, a.Category, a.ImprovementTip).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save assessment: %w", err)
	}
	return id, nil
}

func (r *assessmentRepo) ListAssessments(ctx context.Context, userID int) ([]*biz.Assessment, error) {
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT id, user_id, quiz_score, questions, category, improvement_tip, created_at
		FROM assessments WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []*biz.Assessment
	for rows.Next() {
		a := &biz.Assessment{}
		var questions []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizScore, &questions,
			&a.Category, &a.ImprovementTip, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		if err := json.Unmarshal(questions, &a.Questions); err != nil {
			return nil, fmt.Errorf("decode quiz questions: %w", err)
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}
