package explanation

import "scentMatch/domain"

// Style fixes how an explanation is written for one experience level.
// It is a pure function of the level and is never persisted.
type Style struct {
	Level domain.ExperienceLevel

	// prompt target band
	TargetMinWords int
	TargetMaxWords int

	// validation acceptance band, intentionally wider than the target to
	// tolerate natural generation variance
	AcceptMinWords int
	AcceptMaxWords int

	Complexity         string
	Vocabulary         string
	IncludeEducational bool
	IncludeSummary     bool
	MaxTokens          int
}

// StyleFor returns the writing contract for a level. Unknown levels get the
// beginner contract, the safe default.
func StyleFor(level domain.ExperienceLevel) Style {
	switch level {
	case domain.LevelAdvanced:
		return Style{
			Level:          domain.LevelAdvanced,
			TargetMinWords: 85,
			TargetMaxWords: 115,
			AcceptMinWords: 70,
			AcceptMaxWords: 130,
			Complexity:     "full technical register with comparative market framing",
			Vocabulary:     "technical",
			MaxTokens:      260,
		}
	case domain.LevelIntermediate:
		return Style{
			Level:          domain.LevelIntermediate,
			TargetMinWords: 50,
			TargetMaxWords: 70,
			AcceptMinWords: 40,
			AcceptMaxWords: 80,
			Complexity:     "technical vocabulary with composition and structure",
			Vocabulary:     "enthusiast",
			MaxTokens:      180,
		}
	default:
		return Style{
			Level:              domain.LevelBeginner,
			TargetMinWords:     30,
			TargetMaxWords:     40,
			AcceptMinWords:     25,
			AcceptMaxWords:     45,
			Complexity:         "simple and concrete, teach one concept",
			Vocabulary:         "everyday",
			IncludeEducational: true,
			IncludeSummary:     true,
			MaxTokens:          120,
		}
	}
}
