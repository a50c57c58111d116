package history

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNothingToExport indicates an export was requested over an empty set.
// Callers surface it as a notice, never as a file.
var ErrNothingToExport = errors.New("no history entries to export")

// ExportHeader is the first row of every exported artifact.
const ExportHeader = "Date,Time,Symptoms,Top Condition,Confidence %,Recommendation"

// ExportCSV serializes entries to the tabular export format, one row per
// entry in the given order. Symptom text is always quoted with internal
// quotes doubled.
func ExportCSV(entries []HistoryEntry) (string, error) {
	if len(entries) == 0 {
		return "", ErrNothingToExport
	}
	var b strings.Builder
	b.WriteString(ExportHeader + "\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%s,%s,%s,%s,%d,%s\n",
			e.Date,
			e.Time,
			quote(e.Symptoms),
			e.Top.Name,
			e.Top.ConfidencePercent,
			e.Top.Tier,
		)
	}
	return b.String(), nil
}

// ExportFilename names the artifact after the current date.
func ExportFilename(now time.Time) string {
	return "healthmate-history-" + now.Format("2006-01-02") + ".csv"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
