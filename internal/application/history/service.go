package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/premesh-10/HealthMateAI/internal/application"
	domain "github.com/premesh-10/HealthMateAI/internal/domain/history"
	"github.com/premesh-10/HealthMateAI/internal/domain/triage"
)

// ErrEmptySymptoms indicates a save without the original symptom text.
var ErrEmptySymptoms = errors.New("symptoms text is required")

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Service implements the saved-results use cases. Records are immutable
// once created; the only lifecycle event after creation is deletion.
type Service struct {
	Repo  domain.Repository
	Clock application.Clock
}

// SaveCommand carries one completed analysis to persist.
type SaveCommand struct {
	Symptoms string
	Result   triage.RawResult
	Metadata map[string]any
}

// Save assigns the record identity and creation time, then persists it.
func (s *Service) Save(ctx context.Context, cmd SaveCommand) (*domain.AnalysisRecord, error) {
	symptoms := strings.TrimSpace(cmd.Symptoms)
	if symptoms == "" {
		return nil, ErrEmptySymptoms
	}

	rec := &domain.AnalysisRecord{
		ID:        domain.RecordID(uuid.New().String()),
		Symptoms:  symptoms,
		Result:    cmd.Result,
		Metadata:  cmd.Metadata,
		CreatedAt: s.Clock.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns records most-recent-first. Limit is clamped to [1,200]
// with a default of 50; negative skip is treated as 0.
func (s *Service) List(ctx context.Context, limit, skip int) ([]*domain.AnalysisRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if skip < 0 {
		skip = 0
	}
	return s.Repo.List(ctx, limit, skip)
}

// Get fetches one record by id.
func (s *Service) Get(ctx context.Context, id domain.RecordID) (*domain.AnalysisRecord, error) {
	return s.Repo.Get(ctx, id)
}

// Delete removes one record by id.
func (s *Service) Delete(ctx context.Context, id domain.RecordID) error {
	return s.Repo.Delete(ctx, id)
}

// Export builds the CSV artifact for the stored history, optionally
// filtered by a search term over the symptom text.
func (s *Service) Export(ctx context.Context, search string) (string, string, error) {
	records, err := s.Repo.List(ctx, maxLimit, 0)
	if err != nil {
		return "", "", err
	}
	entries := domain.Search(domain.MapRecords(records), search)
	csv, err := domain.ExportCSV(entries)
	if err != nil {
		return "", "", err
	}
	return csv, domain.ExportFilename(s.Clock.Now()), nil
}
