package inference

import (
	"context"

	"github.com/premesh-10/HealthMateAI/internal/domain/triage"
)

// Engine turns a free-text symptom description into condition guesses.
type Engine interface {
	Infer(ctx context.Context, symptoms string) (*triage.RawResult, error)
}
