package mysql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// test ping
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
			result_json   JSON NOT NULL,
			metadata_json JSON,
			created_at    DATETIME NOT NULL,
			INDEX idx_results_created (created_at)
		);`,
		`CREATE TABLE IF NOT EXISTS inference_failures (
			id           BIGINT AUTO_INCREMENT PRIMARY KEY,
			symptoms     TEXT NOT NULL,
			phase        VARCHAR(32) NOT NULL,
			message      TEXT NOT NULL,
			details_json JSON,
			created_at   DATETIME NOT NULL
		);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
