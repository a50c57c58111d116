package triage

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/premesh-10/HealthMateAI/internal/application"
	"github.com/premesh-10/HealthMateAI/internal/domain/history"
	"github.com/premesh-10/HealthMateAI/internal/domain/inference"
	domain "github.com/premesh-10/HealthMateAI/internal/domain/triage"
)

// ErrEmptySymptoms indicates the request carried no usable symptom text.
var ErrEmptySymptoms = errors.New("symptoms text is required")

const (
	maxConditions = 3
	maxActions    = 6
)

// Service implements the symptom-check use case: run inference, then
// post-process the model output into the canonical RawResult shape.
// Safe for concurrent use.
type Service struct {
	Engine   inference.Engine
	Failures history.FailureLog
	Clock    application.Clock
}

// Check runs one analysis. The returned RawResult is the canonical payload
// stored with a saved record; display normalization happens client-side.
func (s *Service) Check(ctx context.Context, symptoms string) (*domain.RawResult, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return nil, ErrEmptySymptoms
	}

	raw, err := s.Engine.Infer(ctx, symptoms)
	if err != nil {
		s.recordFailure(symptoms, "infer", err)
		return nil, err
	}

	return s.postprocess(raw), nil
}

// postprocess bounds and sanitizes the model output: at most 3 conditions,
// trimmed fields with fixed fallbacks, at most 6 recommended actions,
// confidence clamped to [0,1] at two decimals. An empty condition list is
// replaced with a generic low-confidence guess so the response always
// carries something displayable.
func (s *Service) postprocess(raw *domain.RawResult) *domain.RawResult {
	var conds []domain.RawCondition
	if raw != nil {
		conds = raw.Conditions
	}
	if len(conds) > maxConditions {
		conds = conds[:maxConditions]
	}

	out := make([]domain.RawCondition, 0, len(conds))
	for _, c := range conds {
		out = append(out, domain.RawCondition{
			Name:               fallback(c.Name, "Unknown"),
			Confidence:         clampConfidence(c.Confidence),
			Description:        fallback(c.Description, "No description available."),
			RecommendedActions: boundActions(c.RecommendedActions),
			WhenToSeekCare:     fallback(c.WhenToSeekCare, "If symptoms worsen or persist."),
		})
	}
	if len(out) == 0 {
		out = append(out, fallbackCondition())
	}

	return &domain.RawResult{
		Conditions:  out,
		TriageLevel: domain.OverallTier(out),
		Disclaimer:  domain.Disclaimer,
	}
}

// RecentFailures lists the most recent inference failures for operational
// review. With no failure log configured the list is empty.
func (s *Service) RecentFailures(ctx context.Context, limit int) ([]*history.InferenceFailure, error) {
	if s.Failures == nil {
		return nil, nil
	}
	return s.Failures.Latest(ctx, limit)
}

func (s *Service) recordFailure(symptoms, phase string, err error) {
	if s.Failures == nil {
		return
	}
	details, _ := json.Marshal(map[string]string{"error": err.Error()})
	// best effort, failures of the failure log are dropped
	_ = s.Failures.Record(context.Background(), &history.InferenceFailure{
		Symptoms:    symptoms,
		Phase:       phase,
		Message:     err.Error(),
		DetailsJSON: string(details),
		CreatedAt:   s.Clock.Now(),
	})
}

func fallbackCondition() domain.RawCondition {
	return domain.RawCondition{
		Name:               "Non-specific viral illness",
		Confidence:         0.30,
		Description:        "A mild viral infection may cause short-term fever, sore throat, and fatigue.",
		RecommendedActions: []string{"Rest", "Hydrate", "Use over-the-counter pain relief as directed"},
		WhenToSeekCare:     "If symptoms persist beyond 3 days or worsen.",
	}
}

func clampConfidence(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return math.Round(v*100) / 100
}

func boundActions(actions []string) []string {
	var out []string
	for _, a := range actions {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
		if len(out) == maxActions {
			break
		}
	}
	return out
}

func fallback(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
