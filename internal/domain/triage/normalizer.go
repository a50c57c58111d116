package triage

import (
	"math"
	"strings"
)

const (
	maxDisplayConditions = 3

	fallbackName        = "Unknown"
	fallbackExplanation = "No description available."
	fallbackReasoning   = "Monitor your symptoms and rest. Seek care if they worsen."
)

// Normalize converts a raw inference response into an ordered, bounded set
// of display-ready conditions. The input order is the service's ranking and
// is preserved; only the first 3 entries are kept. The function is total:
// malformed input degrades via fallbacks, it never fails.
func Normalize(raw *RawResult) []DisplayCondition {
	if raw == nil || len(raw.Conditions) == 0 {
		return []DisplayCondition{}
	}

	conds := raw.Conditions
	if len(conds) > maxDisplayConditions {
		conds = conds[:maxDisplayConditions]
	}

	out := make([]DisplayCondition, 0, len(conds))
	for _, c := range conds {
		tier := Classify(c.WhenToSeekCare)
		out = append(out, DisplayCondition{
			Name:              nameOrFallback(c.Name),
			ConfidencePercent: ConfidencePercent(c.Confidence),
			Explanation:       textOrFallback(c.Description, fallbackExplanation),
			Tier:              tier,
			Reasoning:         buildReasoning(c.RecommendedActions, c.WhenToSeekCare),
			IsRedFlag:         tier == TierEmergency,
		})
	}
	return out
}

// ConfidencePercent clamps a raw confidence value to [0,1] and rounds it to
// an integer percentage. Non-finite values map to 0.
func ConfidencePercent(conf float64) int {
	if math.IsNaN(conf) || math.IsInf(conf, 0) {
		return 0
	}
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	return int(math.Round(conf * 100))
}

func buildReasoning(actions []string, whenToSeekCare string) string {
	var parts []string
	if cleaned := cleanActions(actions); len(cleaned) > 0 {
		parts = append(parts, "Recommended actions: "+strings.Join(cleaned, ", ")+".")
	}
	if when := strings.TrimSpace(whenToSeekCare); when != "" {
		parts = append(parts, "When to seek care: "+when)
	}
	if len(parts) == 0 {
		return fallbackReasoning
	}
	return strings.Join(parts, " ")
}

func cleanActions(actions []string) []string {
	var out []string
	for _, a := range actions {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func nameOrFallback(name string) string {
	return textOrFallback(name, fallbackName)
}

func textOrFallback(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}
