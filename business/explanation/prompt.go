package explanation

import (
	"fmt"
	"strings"

	"scentMatch/domain"
)

// PromptSpec is one fully assembled generation request.
type PromptSpec struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// retryGuidance is appended on later attempts to steer the model away from
// whatever failed validation the first time.
var retryGuidance = []string{
	"",
	" Focus on one clear benefit and state how long the scent lasts.",
	" Keep it simple and concrete. Include one comparison to another fragrance style.",
}

// BuildPrompt assembles the generation request for a level and candidate.
// attempt is zero-based; later attempts carry corrective guidance and a
// lower temperature to reduce variance.
func BuildPrompt(style Style, candidate domain.FragranceRecommendation, attempt int) PromptSpec {
	var b strings.Builder

	fmt.Fprintf(&b,
		"Write a recommendation explanation for the fragrance %q by %s.",
		candidate.Name, candidate.Brand,
	)
	if candidate.Category != "" {
		fmt.Fprintf(&b, " Its dominant accord family is %s.", candidate.Category)
	}
	if candidate.Rationale != "" {
		fmt.Fprintf(&b, " It was recommended because: %s.", candidate.Rationale)
	}

	fmt.Fprintf(&b, " Use %d-%d words in a %s voice (%s).",
		style.TargetMinWords, style.TargetMaxWords, style.Vocabulary, style.Complexity,
	)

	switch style.Level {
	case domain.LevelAdvanced:
		b.WriteString(" Cover note composition, performance characteristics, and how it positions against comparable releases in the market.")
	case domain.LevelIntermediate:
		b.WriteString(" Explain the composition and structure, including one performance fact and one comparison.")
	default:
		b.WriteString(" Teach exactly one fragrance concept (for example sillage or base notes), include one performance fact such as how long it lasts, and one concrete comparison. Never talk down to the reader.")
	}

	guidanceIdx := attempt
	if guidanceIdx >= len(retryGuidance) {
		guidanceIdx = len(retryGuidance) - 1
	}
	b.WriteString(retryGuidance[guidanceIdx])

	return PromptSpec{
		Prompt:      b.String(),
		MaxTokens:   style.MaxTokens,
		Temperature: temperatureFor(attempt),
	}
}

// temperatureFor steps sampling down on each retry.
func temperatureFor(attempt int) float64 {
	switch {
	case attempt <= 0:
		return 0.7
	case attempt == 1:
		return 0.5
	default:
		return 0.3
	}
}
