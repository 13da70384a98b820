package data

import (
	"database/sql"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"

	"github.com/iWorld-y/career_coach/internal/conf"
)

// Data wraps the shared database handle.
type Data struct {
	db *sql.DB
}

// NewData opens the database and bootstraps the schema.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	db, err := sql.Open(c.Database.Driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		db.Close()
	}
	return &Data{db: db}, cleanup, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			industry TEXT NOT NULL DEFAULT '',
			experience INT NOT NULL DEFAULT 0,
			bio TEXT NOT NULL DEFAULT '',
			skills TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS industry_insights (
			industry TEXT PRIMARY KEY,
			salary_ranges JSONB NOT NULL DEFAULT '[]',
			growth_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			demand_level TEXT NOT NULL DEFAULT 'MEDIUM',
			top_skills TEXT[] NOT NULL DEFAULT '{}',
			market_outlook TEXT NOT NULL DEFAULT 'NEUTRAL',
			key_trends TEXT[] NOT NULL DEFAULT '{}',
			recommended_skills TEXT[] NOT NULL DEFAULT '{}',
			last_updated TIMESTAMPTZ NOT NULL,
			next_update TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cover_letters (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id),
			company_name TEXT NOT NULL,
			job_title TEXT NOT NULL,
			job_description TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'completed',
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS assessments (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id),
			quiz_score DOUBLE PRECISION NOT NULL,
			questions JSONB NOT NULL DEFAULT '[]',
			category TEXT NOT NULL DEFAULT '',
			improvement_tip TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
