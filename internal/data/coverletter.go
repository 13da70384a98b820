package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/career_coach/internal/biz"
)

type coverLetterRepo struct {
	data *Data
	log  *log.Helper
}

// NewCoverLetterRepo creates the Postgres-backed cover letter repository.
func NewCoverLetterRepo(data *Data, logger log.Logger) biz.CoverLetterRepo {
	return &coverLetterRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *coverLetterRepo) CreateCoverLetter(ctx context.Context, cl *biz.CoverLetter) (int, error) {
	var id int
	err := r.data.db.QueryRowContext(ctx, `
		INSERT INTO cover_letters (user_id, company_name, job_title, job_description, content, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		cl.UserID, cl.CompanyName, cl.JobTitle, cl.JobDescription, cl.Content, cl.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create cover letter: %w", err)
	}
	return id, nil
}

func (r *coverLetterRepo) ListCoverLetters(ctx context.Context, userID int) ([]*biz.CoverLetter, error) {
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT id, user_id, company_name, job_title, job_description, content, status, created_at
		FROM cover_letters WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cover letters: %w", err)
	}
	defer rows.Close()

	var letters []*biz.CoverLetter
	for rows.Next() {
		cl := &biz.CoverLetter{}
		if err := rows.Scan(&cl.ID, &cl.UserID, &cl.CompanyName, &cl.JobTitle,
			&cl.JobDescription, &cl.Content, &cl.Status, &cl.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cover letter: %w", err)
		}
		letters = append(letters, cl)
	}
	return letters, rows.Err()
}

func (r *coverLetterRepo) GetCoverLetter(ctx context.Context, id, userID int) (*biz.CoverLetter, error) {
	cl := &biz.CoverLetter{}
	err := r.data.db.QueryRowContext(ctx, `
		SELECT id, user_id, company_name, job_title, job_description, content, status, created_at
		FROM cover_letters WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&cl.ID, &cl.UserID, &cl.CompanyName, &cl.JobTitle,
			&cl.JobDescription, &cl.Content, &cl.Status, &cl.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("COVER_LETTER_NOT_FOUND", "cover letter not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get cover letter %d: %w", id, err)
	}
	return cl, nil
}

func (r *coverLetterRepo) DeleteCoverLetter(ctx context.Context, id, userID int) error {
	res, err := r.data.db.ExecContext(ctx, `
		DELETE FROM cover_letters WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete cover letter %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cover letter %d: %w", id, err)
	}
	if affected == 0 {
		return errors.NotFound("COVER_LETTER_NOT_FOUND", "cover letter not found")
	}
	return nil
}
