package history

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/premesh-10/HealthMateAI/internal/domain/history"
	"github.com/premesh-10/HealthMateAI/internal/domain/triage"
)

type memRepo struct {
	records   []*domain.AnalysisRecord
	lastLimit int
	lastSkip  int
}

func (m *memRepo) Save(ctx context.Context, rec *domain.AnalysisRecord) error {
	m.records = append([]*domain.AnalysisRecord{rec}, m.records...)
	return nil
}

func (m *memRepo) List(ctx context.Context, limit, skip int) ([]*domain.AnalysisRecord, error) {
	m.lastLimit, m.lastSkip = limit, skip
	if skip >= len(m.records) {
		return nil, nil
	}
	out := m.records[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) Get(ctx context.Context, id domain.RecordID) (*domain.AnalysisRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memRepo) Delete(ctx context.Context, id domain.RecordID) error {
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testTime = time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)

func testService() (*Service, *memRepo) {
	repo := &memRepo{}
	return &Service{Repo: repo, Clock: fixedClock{t: testTime}}, repo
}

func TestSaveAssignsIdentityAndTimestamp(t *testing.T) {
	svc, repo := testService()

	rec, err := svc.Save(context.Background(), SaveCommand{
		Symptoms: "  sore throat  ",
		Result:   triage.RawResult{Conditions: []triage.RawCondition{{Name: "Cold", Confidence: 0.7}}},
		Metadata: map[string]any{domain.MetaSource: "test"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "sore throat", rec.Symptoms)
	assert.Equal(t, "2026-08-30T14:05:00Z", rec.CreatedAt)
	require.Len(t, repo.records, 1)
}

func TestSaveEmptySymptoms(t *testing.T) {
	svc, _ := testService()
	_, err := svc.Save(context.Background(), SaveCommand{Symptoms: " "})
	assert.ErrorIs(t, err, ErrEmptySymptoms)
}

func TestListClampsPagination(t *testing.T) {
	svc, repo := testService()

	_, err := svc.List(context.Background(), 0, -5)
	require.NoError(t, err)
	assert.Equal(t, 50, repo.lastLimit)
	assert.Equal(t, 0, repo.lastSkip)

	_, err = svc.List(context.Background(), 1000, 3)
	require.NoError(t, err)
	assert.Equal(t, 200, repo.lastLimit)
	assert.Equal(t, 3, repo.lastSkip)
}

func TestExport(t *testing.T) {
	svc, _ := testService()
	for _, sym := range []string{"mild headache", "sore throat"} {
		_, err := svc.Save(context.Background(), SaveCommand{
			Symptoms: sym,
			Result:   triage.RawResult{Conditions: []triage.RawCondition{{Name: "Cold", Confidence: 0.5}}},
		})
		require.NoError(t, err)
	}

	csv, filename, err := svc.Export(context.Background(), "throat")
	require.NoError(t, err)
	assert.Equal(t, "healthmate-history-2026-08-30.csv", filename)
	assert.True(t, strings.HasPrefix(csv, domain.ExportHeader))
	assert.Contains(t, csv, `"sore throat"`)
	assert.NotContains(t, csv, "headache")
}

func TestExportEmpty(t *testing.T) {
	svc, _ := testService()
	_, _, err := svc.Export(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNothingToExport)
}
