package experience

import (
	"strings"
	"time"

	"scentMatch/business/explanation"
	"scentMatch/domain"
)

// Engagement weights. The weighted sum is capped at 1.
const (
	daysActiveNorm   = 30.0
	collectionNorm   = 20.0
	interactionNorm  = 10.0
	weightDaysActive = 0.3
	weightCollection = 0.4
	weightQuiz       = 0.2
	weightInteract   = 0.1
)

func indicatorsFromSignals(signals domain.UserSignals) domain.ExperienceIndicators {
	days := 0
	if !signals.AccountCreatedAt.IsZero() {
		days = int(time.Since(signals.AccountCreatedAt).Hours() / 24)
		if days < 0 {
			days = 0
		}
	}

	return domain.ExperienceIndicators{
		QuizCompleted:    signals.QuizCompleted,
		CollectionSize:   signals.CollectionSize,
		DaysActive:       days,
		InteractionCount: signals.InteractionCount,
		EngagementScore:  engagementScore(days, signals),
		KnowledgeSignals: extractKnowledgeSignals(signals.SignalTexts),
	}
}

func engagementScore(daysActive int, signals domain.UserSignals) float64 {
	score := capUnit(float64(daysActive)/daysActiveNorm)*weightDaysActive +
		capUnit(float64(signals.CollectionSize)/collectionNorm)*weightCollection +
		capUnit(float64(signals.InteractionCount)/interactionNorm)*weightInteract

	if signals.QuizCompleted {
		score += weightQuiz
	}

	return capUnit(score)
}

func capUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

// confidenceFor starts at a 0.5 base and earns credit for each class of
// evidence present, capped at 0.95 — computed profiles never claim full
// certainty.
func confidenceFor(ind domain.ExperienceIndicators) float64 {
	confidence := 0.5

	if ind.CollectionSize > 0 {
		confidence += 0.15
	}
	if ind.DaysActive > 0 {
		confidence += 0.15
	}
	if ind.EngagementScore > 0.3 {
		confidence += 0.2
	}

	if confidence > 0.95 {
		confidence = 0.95
	}

	return confidence
}

// extractKnowledgeSignals mines quiz answers and collection notes for
// fragrance vocabulary. Each distinct term counts once.
func extractKnowledgeSignals(texts []string) []string {
	if len(texts) == 0 {
		return nil
	}

	joined := strings.ToLower(strings.Join(texts, " "))

	var tags []string
	for _, term := range explanation.KnowledgeSignalTerms() {
		if strings.Contains(joined, term) {
			tags = append(tags, term)
		}
	}

	return tags
}
