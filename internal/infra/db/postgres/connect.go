package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		return nil, err
	}
	if err := ensureSchema(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_results (
			id            VARCHAR(64) PRIMARY KEY,
			symptoms      TEXT NOT NULL,
			result_json   JSONB NOT NULL,
			metadata_json JSONB,
			created_at    TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_created ON analysis_results (created_at);`,
		`CREATE TABLE IF NOT EXISTS inference_failures (
			id           BIGSERIAL PRIMARY KEY,
			symptoms     TEXT NOT NULL,
			phase        VARCHAR(32) NOT NULL,
			message      TEXT NOT NULL,
			details_json JSONB,
			created_at   TIMESTAMPTZ NOT NULL
		);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
