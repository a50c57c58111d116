package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/premesh-10/HealthMateAI/internal/domain/triage"
)

func record(id, symptoms, createdAt string, conds ...triage.RawCondition) *AnalysisRecord {
	return &AnalysisRecord{
		ID:        RecordID(id),
		Symptoms:  symptoms,
		Result:    triage.RawResult{Conditions: conds},
		CreatedAt: createdAt,
	}
}

func TestMapRecordsDropsUnparsableDates(t *testing.T) {
	records := []*AnalysisRecord{
		record("a", "headache", "2026-08-30T14:05:00Z", triage.RawCondition{Name: "Tension headache", Confidence: 0.7}),
		record("b", "cough", "not-a-timestamp"),
		record("c", "fever", "2026-08-29T09:30:00.123Z", triage.RawCondition{Name: "Flu", Confidence: 0.5}),
		nil,
	}

	entries := MapRecords(records)
	require.Len(t, entries, 2)
	assert.Equal(t, RecordID("a"), entries[0].ID)
	assert.Equal(t, RecordID("c"), entries[1].ID)
	assert.Equal(t, "2026-08-30", entries[0].Date)
	assert.Equal(t, "14:05:00", entries[0].Time)
}

func TestTopPicksMaxConfidenceFirstOccurrence(t *testing.T) {
	rec := record("a", "mixed", "2026-08-30T14:05:00Z",
		triage.RawCondition{Name: "Low", Confidence: 0.4},
		triage.RawCondition{Name: "FirstHigh", Confidence: 0.9},
		triage.RawCondition{Name: "SecondHigh", Confidence: 0.9},
	)

	top := Top(rec)
	assert.Equal(t, "FirstHigh", top.Name)
	assert.Equal(t, 90, top.ConfidencePercent)
}

func TestTopEmptyConditions(t *testing.T) {
	top := Top(record("a", "nothing", "2026-08-30T14:05:00Z"))
	assert.Equal(t, "Unknown", top.Name)
	assert.Equal(t, 0, top.ConfidencePercent)
	assert.Equal(t, triage.TierSelfCare, top.Tier)
}

func TestSearch(t *testing.T) {
	entries := MapRecords([]*AnalysisRecord{
		record("a", "Sore throat and fever", "2026-08-30T10:00:00Z"),
		record("b", "mild headache", "2026-08-30T11:00:00Z"),
		record("c", "THROAT pain when swallowing", "2026-08-30T12:00:00Z"),
	})

	assert.Len(t, Search(entries, ""), 3)
	assert.Len(t, Search(entries, "   "), 3)

	got := Search(entries, "throat")
	require.Len(t, got, 2)
	assert.Equal(t, RecordID("a"), got[0].ID)
	assert.Equal(t, RecordID("c"), got[1].ID)

	assert.Empty(t, Search(entries, "rash"))
}

func TestFind(t *testing.T) {
	entries := MapRecords([]*AnalysisRecord{
		record("a", "headache", "2026-08-30T10:00:00Z"),
		record("b", "cough", "2026-08-30T11:00:00Z"),
	})

	e, ok := Find(entries, "b")
	require.True(t, ok)
	assert.Equal(t, "cough", e.Symptoms)

	_, ok = Find(entries, "missing")
	assert.False(t, ok)
}
