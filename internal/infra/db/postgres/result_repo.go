package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/premesh-10/HealthMateAI/internal/domain/history"
	"github.com/premesh-10/HealthMateAI/internal/domain/triage"
)

type ResultRepository struct{ db *sql.DB }

func NewResultRepository(db *sql.DB) *ResultRepository { return &ResultRepository{db: db} }

// Save inserts one analysis record. Records are never updated in place.
func (r *ResultRepository) Save(ctx context.Context, rec *domain.AnalysisRecord) error {
	const q = `
INSERT INTO analysis_results (id, symptoms, result_json, metadata_json, created_at)
VALUES ($1,$2,$3,$4,$5);
`
	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	metadataJSON, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	created, err := time.Parse(time.RFC3339, rec.CreatedAt)
	if err != nil {
		created = time.Now().UTC()
		rec.CreatedAt = created.Format(time.RFC3339)
	}

	_, err = r.db.ExecContext(ctx, q, rec.ID, rec.Symptoms, resultJSON, metadataJSON, created)
	return err
}

func (r *ResultRepository) Get(ctx context.Context, id domain.RecordID) (*domain.AnalysisRecord, error) {
	const q = `
SELECT id, symptoms, result_json, metadata_json, created_at
FROM analysis_results
WHERE id=$1 LIMIT 1;
`
	return scanRecord(r.db.QueryRowContext(ctx, q, id))
}

func (r *ResultRepository) List(ctx context.Context, limit, skip int) ([]*domain.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}
	const q = `
SELECT id, symptoms, result_json, metadata_json, created_at
FROM analysis_results
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2;
`
	rows, err := r.db.QueryContext(ctx, q, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var out []*domain.AnalysisRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *ResultRepository) Delete(ctx context.Context, id domain.RecordID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analysis_results WHERE id=$1;`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.AnalysisRecord, error) {
	var (
		rec          domain.AnalysisRecord
		resultJSON   []byte
		metadataJSON []byte
		created      time.Time
	)
	if err := row.Scan(&rec.ID, &rec.Symptoms, &resultJSON, &metadataJSON, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resultJSON, &rec.Result); err != nil {
		rec.Result = triage.RawResult{}
	}
	if len(metadataJSON) > 0 {
		_ = json.Unmarshal(metadataJSON, &rec.Metadata)
	}
	rec.CreatedAt = created.UTC().Format(time.RFC3339)
	return &rec, nil
}
