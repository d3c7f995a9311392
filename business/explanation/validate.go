package explanation

import (
	"fmt"
	"strings"

	"scentMatch/domain"
)

// Scoring weights. The score ranks retry attempts; it is not a hard gate.
const (
	scoreWordsInTarget = 30
	scoreWordsInBand   = 20
	scoreFragranceTerm = 30
	scorePerformance   = 25
	scoreComparison    = 15
	penaltyPatronizing = 20
)

// Validate scores text against the structural contract for a style.
// valid means zero issues; the numeric score tolerates partial failures so
// the retry loop can keep the least-bad attempt.
func Validate(text string, style Style) domain.ExplanationValidation {
	v := domain.ExplanationValidation{
		WordCount: len(strings.Fields(text)),
	}

	lower := strings.ToLower(text)

	switch {
	case v.WordCount >= style.TargetMinWords && v.WordCount <= style.TargetMaxWords:
		v.Score += scoreWordsInTarget
	case v.WordCount >= style.AcceptMinWords && v.WordCount <= style.AcceptMaxWords:
		v.Score += scoreWordsInBand
	default:
		v.Issues = append(v.Issues, fmt.Sprintf(
			"word count %d outside acceptable range %d-%d",
			v.WordCount, style.AcceptMinWords, style.AcceptMaxWords,
		))
	}

	v.HasFragranceTerm = hasGlossaryTerm(lower)
	if v.HasFragranceTerm {
		v.Score += scoreFragranceTerm
	} else {
		v.Issues = append(v.Issues, "missing fragrance terminology")
	}

	v.HasPerformance = containsAny(lower, performanceMarkers)
	if v.HasPerformance {
		v.Score += scorePerformance
	} else {
		v.Issues = append(v.Issues, "missing performance or behavior description")
	}

	v.HasComparison = containsAny(lower, comparisonMarkers)
	if v.HasComparison {
		v.Score += scoreComparison
	} else {
		v.Issues = append(v.Issues, "missing meaningful comparison")
	}

	v.HasPatronizing = containsAny(lower, patronizingPhrases)
	if v.HasPatronizing {
		v.Score -= penaltyPatronizing
		v.Issues = append(v.Issues, "contains patronizing phrasing")
	}

	if v.Score < 0 {
		v.Score = 0
	}

	return v
}

// hasGlossaryTerm matches glossary entries, accepting the singular form of
// plural terms ("base note" for "base notes").
func hasGlossaryTerm(lower string) bool {
	for term := range glossary {
		if strings.Contains(lower, term) {
			return true
		}
		if singular, ok := strings.CutSuffix(term, "s"); ok && strings.Contains(lower, singular) {
			return true
		}
	}
	return false
}

func containsAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// EducationalTerms extracts the glossary entries actually used in the text.
func EducationalTerms(text string) map[string]string {
	lower := strings.ToLower(text)

	terms := make(map[string]string)
	for term, definition := range glossary {
		if strings.Contains(lower, term) {
			terms[term] = definition
			continue
		}
		if singular, ok := strings.CutSuffix(term, "s"); ok && strings.Contains(lower, singular) {
			terms[term] = definition
		}
	}

	return terms
}
