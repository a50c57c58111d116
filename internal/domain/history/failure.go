package history

import "time"

// InferenceFailure is a persisted record of a failed inference attempt.
// Kept for operational review; never surfaced to end users.
type InferenceFailure struct {
	ID          int64     `json:"id"`
	Symptoms    string    `json:"symptoms"`
	Phase       string    `json:"phase"` // infer | decode | other
	Message     string    `json:"message"`
	DetailsJSON string    `json:"details_json,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
