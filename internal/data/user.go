package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/lib/pq"

	"github.com/iWorld-y/career_coach/internal/biz"
)

type userRepo struct {
	data *Data
	log  *log.Helper
}

// NewUserRepo creates the Postgres-backed user repository.
func NewUserRepo(data *Data, logger log.Logger) biz.UserRepo {
	return &userRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *userRepo) CreateUser(ctx context.Context, u *biz.User) error {
	err := r.data.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id`,
		u.Username, u.PasswordHash).Scan(&u.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return errors.Conflict("USER_EXISTS", "username already taken")
		}
		return fmt.Errorf("create user %q: %w", u.Username, err)
	}
	return nil
}

func (r *userRepo) GetUserByUsername(ctx context.Context, username string) (*biz.User, error) {
	u := &biz.User{}
	err := r.data.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, industry, experience, bio, skills
		FROM users WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Industry, &u.Experience, &u.Bio, pq.Array(&u.Skills))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("USER_NOT_FOUND", "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	if u.Skills == nil {
		u.Skills = []string{}
	}
	return u, nil
}

// UpdateProfileTx commits the profile change and the optional insight upsert
// as one transaction. The insight, if any, was generated before this call;
// no model traffic happens while the transaction is open.
func (r *userRepo) UpdateProfileTx(ctx context.Context, id int, industry string, experience int, bio string, skills []string, insight *biz.Insight) error {
	if skills == nil {
		skills = []string{}
	}

	tx, err := r.data.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin profile tx: %w", err)
	}

	if insight != nil {
		if err := upsertInsight(ctx, tx, insight); err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				err = fmt.Errorf("%w: %v", err, rerr)
			}
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET industry = $1, experience = $2, bio = $3, skills = $4
		WHERE id = $5`,
		industry, experience, bio, pq.Array(skills), id)
	if err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: %v", err, rerr)
		}
		return fmt.Errorf("update profile %d: %w", id, err)
	}

	return tx.Commit()
}
