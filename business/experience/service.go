package experience

import (
	"context"
	"fmt"
	"time"

	"scentMatch/domain"
	"scentMatch/pkg/cache"
	"scentMatch/pkg/config"
	"scentMatch/pkg/logger"
	"scentMatch/pkg/timeout"
)

const defaultClassifyTimeout = 8 * time.Second

// SignalRepository is the read-only profile/behavior store.
type SignalRepository interface {
	// GetSignals is the batched single-round-trip read.
	GetSignals(ctx context.Context, userID uint) (domain.UserSignals, error)
	// GetLevelSignals is a narrower read for the level-only fast path.
	GetLevelSignals(ctx context.Context, userID uint) (domain.UserSignals, error)
}

type Service struct {
	repo  SignalRepository
	cache *cache.Cache
	cfg   config.ExperienceConfig
}

func NewService(repo SignalRepository, c *cache.Cache, cfg config.ExperienceConfig) *Service {
	if cfg.ClassifyTimeout <= 0 {
		cfg.ClassifyTimeout = defaultClassifyTimeout
	}
	return &Service{
		repo:  repo,
		cache: c,
		cfg:   cfg,
	}
}

// DefaultProfile is the anonymous/beginner safety default. High confidence
// because it is a policy, not a measurement.
func DefaultProfile() domain.ExperienceProfile {
	return domain.ExperienceProfile{
		Level:      domain.LevelBeginner,
		Confidence: 0.9,
		ComputedAt: time.Now(),
	}
}

// Classify derives a full experience profile for a user.
//
// No user id -> beginner default with zero I/O. Any fetch or compute
// problem also resolves to the beginner default; classification never
// blocks or fails the caller. Computed (non-fallback) profiles are cached.
func (s *Service) Classify(ctx context.Context, userID uint) (domain.ExperienceProfile, error) {
	if userID == 0 {
		return DefaultProfile(), nil
	}

	key := profileCacheKey(userID)
	if cached, ok := s.cache.Get(key); ok {
		if profile, ok := cached.(domain.ExperienceProfile); ok {
			profile.CachingUsed = true
			return profile, nil
		}
	}

	signals, err := timeout.Run(ctx, func(ctx context.Context) (domain.UserSignals, error) {
		return s.repo.GetSignals(ctx, userID)
	}, timeout.Options[domain.UserSignals]{
		Timeout: s.cfg.ClassifyTimeout,
		Label:   "experience_classification",
	})
	if err != nil {
		logger.Warn("experience_classify_fallback", "user_id", userID, "error", err)
		classificationsTotal.WithLabelValues("fallback").Inc()
		return DefaultProfile(), nil
	}

	profile := s.profileFromSignals(signals)
	s.cache.Set(key, profile, s.cfg.ProfileCacheTTL)
	classificationsTotal.WithLabelValues(string(profile.Level)).Inc()

	logger.Debug("experience_classified",
		"user_id", userID,
		"level", string(profile.Level),
		"confidence", profile.Confidence,
		"engagement", profile.Indicators.EngagementScore,
	)

	return profile, nil
}

// ClassifyLevelOnly is the fast path for callers that only need the level.
// It performs a narrower read, keeps its own shorter-lived cache entry, and
// applies the same decision rule over the reduced signal set.
func (s *Service) ClassifyLevelOnly(ctx context.Context, userID uint) (domain.ExperienceLevel, error) {
	if userID == 0 {
		return domain.LevelBeginner, nil
	}

	key := levelCacheKey(userID)
	if cached, ok := s.cache.Get(key); ok {
		if level, ok := cached.(domain.ExperienceLevel); ok {
			return level, nil
		}
	}

	signals, err := timeout.Run(ctx, func(ctx context.Context) (domain.UserSignals, error) {
		if s.cfg.BatchedSignalReads {
			return s.repo.GetSignals(ctx, userID)
		}
		return s.repo.GetLevelSignals(ctx, userID)
	}, timeout.Options[domain.UserSignals]{
		Timeout: s.cfg.ClassifyTimeout,
		Label:   "experience_level_read",
	})
	if err != nil {
		logger.Warn("experience_level_fallback", "user_id", userID, "error", err)
		return domain.LevelBeginner, nil
	}

	level := s.decideLevel(indicatorsFromSignals(signals))
	s.cache.Set(key, level, s.cfg.LevelOnlyCacheTTL)

	return level, nil
}

func (s *Service) profileFromSignals(signals domain.UserSignals) domain.ExperienceProfile {
	ind := indicatorsFromSignals(signals)

	return domain.ExperienceProfile{
		Level:      s.decideLevel(ind),
		Confidence: confidenceFor(ind),
		Indicators: ind,
		ComputedAt: time.Now(),
	}
}

// decideLevel applies the ordered three-level rule; first match wins.
func (s *Service) decideLevel(ind domain.ExperienceIndicators) domain.ExperienceLevel {
	signalCount := len(ind.KnowledgeSignals)

	if ind.CollectionSize >= s.cfg.AdvancedCollection &&
		ind.DaysActive >= s.cfg.AdvancedDays &&
		ind.EngagementScore >= s.cfg.AdvancedEngagement &&
		signalCount >= s.cfg.AdvancedSignals {
		return domain.LevelAdvanced
	}

	if (ind.CollectionSize >= s.cfg.IntermediateCollect && ind.DaysActive >= s.cfg.IntermediateDays) ||
		(ind.EngagementScore >= s.cfg.IntermediateEngage && signalCount >= s.cfg.IntermediateSignals) {
		return domain.LevelIntermediate
	}

	return domain.LevelBeginner
}

func profileCacheKey(userID uint) string {
	return fmt.Sprintf("experience:profile:%d", userID)
}

func levelCacheKey(userID uint) string {
	return fmt.Sprintf("experience:level:%d", userID)
}
