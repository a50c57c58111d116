package triage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmpty(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, Normalize(&RawResult{}))
	assert.Empty(t, Normalize(&RawResult{Conditions: []RawCondition{}}))
}

func TestNormalizeTruncatesToThree(t *testing.T) {
	raw := &RawResult{Conditions: []RawCondition{
		{Name: "first", Confidence: 0.1},
		{Name: "second", Confidence: 0.9},
		{Name: "third", Confidence: 0.5},
		{Name: "fourth", Confidence: 0.99},
		{Name: "fifth", Confidence: 0.2},
	}}

	got := Normalize(raw)
	require.Len(t, got, 3)
	// input order is the service ranking, never re-sorted by confidence
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, "second", got[1].Name)
	assert.Equal(t, "third", got[2].Name)
}

func TestNormalizeFallbacks(t *testing.T) {
	raw := &RawResult{Conditions: []RawCondition{{}}}

	got := Normalize(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "Unknown", got[0].Name)
	assert.Equal(t, 0, got[0].ConfidencePercent)
	assert.Equal(t, "No description available.", got[0].Explanation)
	assert.Equal(t, fallbackReasoning, got[0].Reasoning)
	assert.Equal(t, TierSelfCare, got[0].Tier)
	assert.False(t, got[0].IsRedFlag)
}

func TestConfidencePercentClamping(t *testing.T) {
	tests := []struct {
		name string
		conf float64
		want int
	}{
		{"nan", math.NaN(), 0},
		{"positive inf", math.Inf(1), 0},
		{"negative inf", math.Inf(-1), 0},
		{"negative", -0.3, 0},
		{"above one", 1.7, 100},
		{"zero", 0, 0},
		{"rounds up", 0.825, 83},
		{"rounds down", 0.824, 82},
		{"exact", 0.5, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfidencePercent(tt.conf))
		})
	}
}

func TestNormalizeReasoning(t *testing.T) {
	raw := &RawResult{Conditions: []RawCondition{
		{
			Name:               "Common Cold",
			RecommendedActions: []string{"Rest at home", " Hydrate ", ""},
			WhenToSeekCare:     "If fever lasts more than 3 days.",
		},
		{
			Name:               "Flu",
			RecommendedActions: []string{"Rest"},
		},
		{
			Name:           "Sinusitis",
			WhenToSeekCare: "If facial pain worsens.",
		},
	}}

	got := Normalize(raw)
	require.Len(t, got, 3)
	assert.Equal(t, "Recommended actions: Rest at home, Hydrate. When to seek care: If fever lasts more than 3 days.", got[0].Reasoning)
	assert.Equal(t, "Recommended actions: Rest.", got[1].Reasoning)
	assert.Equal(t, "When to seek care: If facial pain worsens.", got[2].Reasoning)
}

func TestNormalizeRedFlagMatchesTier(t *testing.T) {
	raw := &RawResult{Conditions: []RawCondition{
		{Name: "Angina", WhenToSeekCare: "Call emergency services for chest pain."},
		{Name: "Bronchitis", WhenToSeekCare: "See a doctor if coughing persists."},
		{Name: "Cold", WhenToSeekCare: "Rest and fluids."},
	}}

	for _, c := range Normalize(raw) {
		assert.Equal(t, c.Tier == TierEmergency, c.IsRedFlag, "condition %s", c.Name)
	}
}

// End-to-end scenario: an acute cardiac description must surface as an
// emergency with the rounded confidence.
func TestNormalizeEmergencyScenario(t *testing.T) {
	raw := &RawResult{Conditions: []RawCondition{{
		Name:           "Possible cardiac event",
		Confidence:     0.82,
		WhenToSeekCare: "chest pain and shortness of breath require an emergency department visit",
	}}}

	got := Normalize(raw)
	require.Len(t, got, 1)
	assert.Equal(t, TierEmergency, got[0].Tier)
	assert.Equal(t, 82, got[0].ConfidencePercent)
	assert.True(t, got[0].IsRedFlag)
}

// End-to-end scenario: mild input with no care hint falls back to self-care
// and the default reasoning sentence.
func TestNormalizeSelfCareScenario(t *testing.T) {
	raw := &RawResult{Conditions: []RawCondition{{
		Name:       "Tension headache",
		Confidence: 0.6,
	}}}

	got := Normalize(raw)
	require.Len(t, got, 1)
	assert.Equal(t, TierSelfCare, got[0].Tier)
	assert.Equal(t, fallbackReasoning, got[0].Reasoning)
	assert.False(t, got[0].IsRedFlag)
}
