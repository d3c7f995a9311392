package domain

// AdaptiveExplanation is the final explanation attached to a candidate.
// Immutable once attached; cached keyed by (fragrance id, level, context hash).
type AdaptiveExplanation struct {
	Level             ExperienceLevel   `json:"experience_level"`
	Summary           string            `json:"summary"`
	Expanded          string            `json:"expanded,omitempty"`
	EducationalTerms  map[string]string `json:"educational_terms,omitempty"`
	ConfidenceMessage string            `json:"confidence_message,omitempty"`
	Tips              []string          `json:"tips,omitempty"`
	Score             int               `json:"score"`
	Source            string            `json:"source"` // generated | emergency | cache
}

// ExplanationValidation is the structural scorecard for one generated text.
type ExplanationValidation struct {
	WordCount        int      `json:"word_count"`
	HasFragranceTerm bool     `json:"has_fragrance_term"`
	HasPerformance   bool     `json:"has_performance"`
	HasComparison    bool     `json:"has_comparison"`
	HasPatronizing   bool     `json:"has_patronizing"`
	Issues           []string `json:"issues"`
	Score            int      `json:"score"`
}

// Valid reports whether the text met the full structural contract.
func (v ExplanationValidation) Valid() bool {
	return len(v.Issues) == 0
}

// ExplanationAttempt is one generated-and-scored explanation inside the
// retry loop. Ephemeral.
type ExplanationAttempt struct {
	Text       string
	Validation ExplanationValidation
	Attempt    int
}
