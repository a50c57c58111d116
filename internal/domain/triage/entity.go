package triage

// Tier enum: safety classification attached to a condition guess
type Tier string

const (
	TierSelfCare  Tier = "self-care"
	TierDoctor    Tier = "doctor"
	TierEmergency Tier = "emergency"
)

// RawCondition is one condition guess exactly as the inference service
// returned it. Confidence is nominally in [0,1] but not guaranteed.
type RawCondition struct {
	Name               string   `json:"name"`
	Confidence         float64  `json:"confidence"`
	Description        string   `json:"description,omitempty"`
	RecommendedActions []string `json:"recommendedActions,omitempty"`
	WhenToSeekCare     string   `json:"whenToSeekCare,omitempty"`
}

// RawResult is the unmodified response payload from the inference service
// for one analysis request.
type RawResult struct {
	Conditions  []RawCondition `json:"conditions"`
	TriageLevel Tier           `json:"triageLevel,omitempty"`
	Disclaimer  string         `json:"disclaimer"`
}

// DisplayCondition is the display-ready projection of one RawCondition.
type DisplayCondition struct {
	Name              string `json:"name"`
	ConfidencePercent int    `json:"confidence_percent"`
	Explanation       string `json:"explanation"`
	Tier              Tier   `json:"tier"`
	Reasoning         string `json:"reasoning"`
	IsRedFlag         bool   `json:"is_red_flag"`
}

// Disclaimer is attached to every triage response.
const Disclaimer = "This tool provides educational insights only. Consult a healthcare professional for medical advice."
