package domain

import "time"

// ExperienceLevel buckets a user's fragrance sophistication. It governs
// explanation style only; it is never persisted on its own.
type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelAdvanced     ExperienceLevel = "advanced"
)

// ExperienceIndicators are the behavioral signals the classifier derives
// a level from.
type ExperienceIndicators struct {
	QuizCompleted    bool     `json:"quiz_completed"`
	CollectionSize   int      `json:"collection_size"`
	DaysActive       int      `json:"days_active"`
	InteractionCount int      `json:"interaction_count"`
	EngagementScore  float64  `json:"engagement_score"` // [0,1]
	KnowledgeSignals []string `json:"knowledge_signals"`
}

// ExperienceProfile is the classifier output. Confidence is capped at 0.95
// for computed profiles; the anonymous default carries 0.9.
type ExperienceProfile struct {
	Level       ExperienceLevel      `json:"level"`
	Confidence  float64              `json:"confidence"`
	Indicators  ExperienceIndicators `json:"indicators"`
	CachingUsed bool                 `json:"caching_used"`
	ComputedAt  time.Time            `json:"computed_at"`
}

// UserSignals is the batched read from the profile/behavior store.
// SignalTexts carries the raw quiz answers and collection notes the
// classifier mines for knowledge-signal tags.
type UserSignals struct {
	AccountCreatedAt time.Time
	CollectionSize   int
	QuizCompleted    bool
	InteractionCount int
	SignalTexts      []string
}
