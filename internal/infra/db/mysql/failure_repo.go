package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	domain "github.com/premesh-10/HealthMateAI/internal/domain/history"
)

type FailureRepository struct {
	db *sql.DB
}

func NewFailureRepository(db *sql.DB) *FailureRepository { return &FailureRepository{db: db} }

// Record stores one inference failure for operational review.
func (r *FailureRepository) Record(ctx context.Context, f *domain.InferenceFailure) error {
	const q = `
INSERT INTO inference_failures (symptoms, phase, message, details_json, created_at)
VALUES (?,?,?,?,?);
`
	msg := f.Message
	if strings.TrimSpace(msg) == "" {
		msg = "-"
	}
	details := f.DetailsJSON
	if strings.TrimSpace(details) == "" {
		details = "{}"
	} else {
		// ensure valid json; if invalid, wrap as string field
		var js any
		if json.Unmarshal([]byte(details), &js) != nil {
			b, _ := json.Marshal(map[string]string{"raw": details})
			details = string(b)
		}
	}
	created := f.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q, stringOrDash(f.Symptoms), stringOrDash(f.Phase), msg, details, created)
	return err
}

// Latest lists recent failures, newest first.
func (r *FailureRepository) Latest(ctx context.Context, limit int) ([]*domain.InferenceFailure, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, symptoms, phase, message, details_json, created_at
FROM inference_failures
ORDER BY created_at DESC, id DESC
LIMIT ?;`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.InferenceFailure
	for rows.Next() {
		var f domain.InferenceFailure
		if err := rows.Scan(&f.ID, &f.Symptoms, &f.Phase, &f.Message, &f.DetailsJSON, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
