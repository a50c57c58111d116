package history

import (
	"strings"
	"time"

	"github.com/premesh-10/HealthMateAI/internal/domain/triage"
)

// MapRecords projects stored records into list entries, preserving the
// store's ordering. Records whose createdAt cannot be parsed are treated
// as corrupt and dropped; every other record is kept.
func MapRecords(records []*AnalysisRecord) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		ts, err := parseCreatedAt(rec.CreatedAt)
		if err != nil {
			continue
		}
		entries = append(entries, HistoryEntry{
			ID:       rec.ID,
			Date:     ts.Format("2006-01-02"),
			Time:     ts.Format("15:04:05"),
			Symptoms: rec.Symptoms,
			Top:      Top(rec),
		})
	}
	return entries
}

// Top selects the record's highest-confidence condition. Ties break to the
// first occurrence in the stored order. A record with no conditions
// degrades to an unknown self-care summary rather than being dropped.
func Top(rec *AnalysisRecord) TopResult {
	conds := rec.Result.Conditions
	if len(conds) == 0 {
		return TopResult{Name: "Unknown", ConfidencePercent: 0, Tier: triage.TierSelfCare}
	}
	best := conds[0]
	for _, c := range conds[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}
	name := strings.TrimSpace(best.Name)
	if name == "" {
		name = "Unknown"
	}
	return TopResult{
		Name:              name,
		ConfidencePercent: triage.ConfidencePercent(best.Confidence),
		Tier:              triage.Classify(best.WhenToSeekCare),
	}
}

// Search filters entries by case-insensitive substring match over the
// symptom text. An empty term returns the input unfiltered.
func Search(entries []HistoryEntry, term string) []HistoryEntry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return entries
	}
	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Symptoms), term) {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the entry with the given id from an already-loaded set.
func Find(entries []HistoryEntry, id RecordID) (HistoryEntry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return HistoryEntry{}, false
}

func parseCreatedAt(s string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		ts, err = time.Parse(time.RFC3339, s)
	}
	return ts, err
}
