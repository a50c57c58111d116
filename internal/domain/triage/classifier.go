package triage

import "strings"

// Keyword lists evaluated in strict priority order. Best-effort text
// classification only, not a medical determination.
var (
	emergencyKeywords = []string{
		"emergency",
		"shortness of breath",
		"confusion",
		"severe",
		"chest pain",
		"faint",
	}

	doctorKeywords = []string{
		"seek",
		"consult",
		"doctor",
		"provider",
		"medical advice",
		"persist",
	}
)

// Classify maps a free-text "when to seek care" hint into a safety tier.
// Matching is case-insensitive substring search; emergency keywords win
// over doctor keywords regardless of position in the text. Empty input
// classifies as self-care.
func Classify(whenToSeekCare string) Tier {
	text := strings.ToLower(whenToSeekCare)
	if containsAny(text, emergencyKeywords) {
		return TierEmergency
	}
	if containsAny(text, doctorKeywords) {
		return TierDoctor
	}
	return TierSelfCare
}

// OverallTier returns the highest tier among the condition guesses. An
// empty list classifies as self-care.
func OverallTier(conds []RawCondition) Tier {
	out := TierSelfCare
	for _, c := range conds {
		switch Classify(c.WhenToSeekCare) {
		case TierEmergency:
			return TierEmergency
		case TierDoctor:
			out = TierDoctor
		}
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
