package domain

// FragranceRecommendation is one ranked candidate as produced by the
// candidate source. The core never mutates the ranked fields; the enhancer
// only attaches an AdaptiveExplanation.
type FragranceRecommendation struct {
	FragranceID     uint64  `json:"fragrance_id"`
	Name            string  `json:"name"`
	Brand           string  `json:"brand"`
	Category        string  `json:"category"` // dominant accord family, e.g. "woody"
	Score           float64 `json:"score"`    // source score in [0,1]
	Rationale       string  `json:"rationale,omitempty"`
	SamplePrice     float64 `json:"sample_price,omitempty"`
	SampleAvailable bool    `json:"sample_available"`

	AdaptiveExplanation *AdaptiveExplanation `json:"adaptive_explanation,omitempty"`
}

// RecommendationRequest is the inbound envelope.
type RecommendationRequest struct {
	Strategy          string            `json:"strategy" validate:"omitempty,oneof=database generation hybrid"`
	UserID            uint              `json:"-"` // set from auth middleware, never from the body
	SessionToken      string            `json:"session_token,omitempty"`
	PreferenceSignals map[string]string `json:"preference_signals,omitempty"`
	Limit             int               `json:"limit" validate:"omitempty,min=1"`
	AdaptiveEnabled   *bool             `json:"adaptive_explanations,omitempty"`
}

// RecommendationResult is the outbound envelope. Its shape is the stable
// contract for any caller built against this core.
type RecommendationResult struct {
	Success         bool                      `json:"success"`
	Recommendations []FragranceRecommendation `json:"recommendations"`
	Confidence      float64                   `json:"confidence"`
	SessionToken    string                    `json:"session_token"`
	Strategy        string                    `json:"strategy_used"`
	FallbackUsed    bool                      `json:"fallback_used"`
	ElapsedMs       int64                     `json:"elapsed_ms"`
	Count           int                       `json:"recommendation_count"`
	Error           string                    `json:"error,omitempty"`
}
