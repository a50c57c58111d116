package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/premesh-10/HealthMateAI/internal/domain/triage"
)

func TestExportCSVEmpty(t *testing.T) {
	_, err := ExportCSV(nil)
	assert.ErrorIs(t, err, ErrNothingToExport)

	_, err = ExportCSV([]HistoryEntry{})
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestExportCSV(t *testing.T) {
	entries := []HistoryEntry{
		{
			ID: "a", Date: "2026-08-30", Time: "14:05:00",
			Symptoms: `fever and "shivering" at night`,
			Top:      TopResult{Name: "Flu", ConfidencePercent: 74, Tier: triage.TierDoctor},
		},
		{
			ID: "b", Date: "2026-08-29", Time: "09:30:00",
			Symptoms: "mild headache",
			Top:      TopResult{Name: "Tension headache", ConfidencePercent: 61, Tier: triage.TierSelfCare},
		},
	}

	csv, err := ExportCSV(entries)
	require.NoError(t, err)

	want := ExportHeader + "\n" +
		`2026-08-30,14:05:00,"fever and ""shivering"" at night",Flu,74,doctor` + "\n" +
		`2026-08-29,09:30:00,"mild headache",Tension headache,61,self-care` + "\n"
	assert.Equal(t, want, csv)
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "healthmate-history-2026-08-30.csv", ExportFilename(now))
}
