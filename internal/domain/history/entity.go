package history

import (
	"github.com/premesh-10/HealthMateAI/internal/domain/triage"
)

// ID type for a stored analysis
type RecordID string

// AnalysisRecord is the durable representation of one completed analysis.
// The store assigns ID and CreatedAt; the conditions are kept exactly as
// the inference service returned them so the canonical record stays
// reproducible. Records are immutable once created; the only lifecycle
// event after creation is deletion.
type AnalysisRecord struct {
	ID        RecordID         `json:"id"`
	Symptoms  string           `json:"symptoms"`
	Result    triage.RawResult `json:"result"`
	Metadata  map[string]any   `json:"metadata,omitempty"`
	CreatedAt string           `json:"createdAt"`
}

// TopResult is the single highest-confidence condition of a record,
// summarized for list views.
type TopResult struct {
	Name              string      `json:"name"`
	ConfidencePercent int         `json:"confidence_percent"`
	Tier              triage.Tier `json:"tier"`
}

// HistoryEntry is a lightweight, display-oriented projection of an
// AnalysisRecord used in list views.
type HistoryEntry struct {
	ID       RecordID  `json:"id"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
	Symptoms string    `json:"symptoms"`
	Top      TopResult `json:"top"`
}

// Metadata keys written by clients on save.
const (
	MetaSource    = "source"
	MetaClientSig = "clientSignature"
)
