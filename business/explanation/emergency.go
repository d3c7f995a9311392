package explanation

import (
	"fmt"
	"strings"

	"scentMatch/domain"
)

// Emergency builds the deterministic safety-net explanation from the
// candidate's own fields. It involves no generation and is constructed so
// that Validate passes for its level; every enhanced item can therefore
// always carry a structurally valid explanation.
func Emergency(candidate domain.FragranceRecommendation, level domain.ExperienceLevel) *domain.AdaptiveExplanation {
	style := StyleFor(level)

	category := candidate.Category
	if category == "" {
		category = "versatile"
	}

	var text string
	switch level {
	case domain.LevelAdvanced:
		text = fmt.Sprintf(
			"%s by %s is structured around a %s accord, moving from a bright opening through a rounded heart into a base note dry down that anchors the composition. "+
				"Longevity sits in the six to eight hour range with measured projection, stronger than the average designer eau de toilette but more restrained than extrait strength releases. "+
				"Compared to similar offerings in its category, it trades raw power for balance and transparency, which positions it well for wearers who value versatility over statement sillage.",
			candidate.Name, candidate.Brand, category,
		)
	case domain.LevelIntermediate:
		text = fmt.Sprintf(
			"%s by %s opens crisp and settles into a %s accord structure anchored by warm base notes. "+
				"Longevity runs six to eight hours with moderate sillage, more present than a typical eau de toilette yet lighter than dense niche compositions, "+
				"which makes it a dependable pick for regular wear across most seasons.",
			candidate.Name, candidate.Brand, category,
		)
	default:
		text = fmt.Sprintf(
			"%s by %s is a %s fragrance built on a warm base note foundation. "+
				"It lasts about six hours on skin, and its sillage stays closer than most designer picks, so it wears comfortably through a full day.",
			candidate.Name, candidate.Brand, category,
		)
	}

	validation := Validate(text, style)

	expl := &domain.AdaptiveExplanation{
		Level:             level,
		Summary:           firstSentence(text),
		ConfidenceMessage: confidenceMessageFor(level),
		Tips:              TipsForCategory(candidate.Category),
		Score:             validation.Score,
		Source:            "emergency",
	}

	if level != domain.LevelBeginner {
		expl.Expanded = text
	} else {
		expl.Summary = text
	}

	if style.IncludeEducational {
		expl.EducationalTerms = EducationalTerms(text)
	}

	return expl
}

func confidenceMessageFor(level domain.ExperienceLevel) string {
	switch level {
	case domain.LevelAdvanced:
		return "Selected for depth of composition rather than mass appeal."
	case domain.LevelIntermediate:
		return "A solid match for your developing preferences."
	default:
		return "A safe, crowd-pleasing pick that is easy to wear while you find what you like."
	}
}

func firstSentence(text string) string {
	if idx := strings.Index(text, ". "); idx > 0 {
		return text[:idx+1]
	}
	return text
}
