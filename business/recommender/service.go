// Package recommender orchestrates the recommendation pipeline: strategy
// selection, experience classification, candidate fetch, batch enhancement,
// and envelope assembly.
package recommender

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"scentMatch/business/explanation"
	"scentMatch/domain"
	"scentMatch/pkg/config"
	"scentMatch/pkg/logger"
	"scentMatch/pkg/metrics"
	"scentMatch/pkg/timeout"

	"github.com/google/uuid"
)

const (
	StrategyDatabase   = "database"
	StrategyGeneration = "generation"
	StrategyHybrid     = "hybrid"

	defaultLimit = 10
	maxLimit     = 50
	overFetch    = 2
)

// ---- collaborator interfaces ----

type CandidateSource interface {
	GetRanked(ctx context.Context, signals map[string]string, limit int) ([]domain.FragranceRecommendation, error)
	GetPopular(ctx context.Context, limit int) ([]domain.FragranceRecommendation, error)
}

type ExperienceClassifier interface {
	Classify(ctx context.Context, userID uint) (domain.ExperienceProfile, error)
}

type BatchEnhancer interface {
	Enhance(ctx context.Context, recs []domain.FragranceRecommendation, level domain.ExperienceLevel, requesterCtx string) ([]domain.FragranceRecommendation, bool, error)
}

type ExplanationGenerator interface {
	Generate(ctx context.Context, req explanation.Request) (*domain.AdaptiveExplanation, error)
}

type SessionStore interface {
	SaveSession(ctx context.Context, session domain.RecommendationSession, ttl time.Duration) error
	TouchSession(ctx context.Context, token string, ttl time.Duration) error
}

// ---- service ----

type Service struct {
	source     CandidateSource
	classifier ExperienceClassifier
	enhancer   BatchEnhancer
	generator  ExplanationGenerator
	sessions   SessionStore
	cfg        config.ExplanationConfig
}

func NewService(
	source CandidateSource,
	classifier ExperienceClassifier,
	enhancer BatchEnhancer,
	generator ExplanationGenerator,
	sessions SessionStore,
	cfg config.ExplanationConfig,
) *Service {
	return &Service{
		source:     source,
		classifier: classifier,
		enhancer:   enhancer,
		generator:  generator,
		sessions:   sessions,
		cfg:        cfg,
	}
}

// Recommend runs one request through a single linear pass and always
// returns an envelope; failures below the candidate fetch are absorbed into
// degraded-but-successful results.
func (s *Service) Recommend(ctx context.Context, req domain.RecommendationRequest) domain.RecommendationResult {
	start := time.Now()

	limit := clampLimit(req.Limit)
	strategy := req.Strategy
	if strategy == "" {
		strategy = StrategyHybrid
	}

	token := req.SessionToken
	newSession := token == ""
	if newSession {
		token = uuid.NewString()
	}

	logger.Debug("recommendation_request",
		"strategy", strategy,
		"user_id", req.UserID,
		"limit", limit,
		"session", token,
	)

	var result domain.RecommendationResult
	switch strategy {
	case StrategyDatabase:
		result = s.runDatabase(ctx, req, limit)
	case StrategyGeneration:
		result = s.runGeneration(ctx, req, limit)
	default:
		result = s.runHybrid(ctx, req, limit)
	}

	result.SessionToken = token
	result.Count = len(result.Recommendations)
	result.Confidence = meanScore(result.Recommendations)
	result.ElapsedMs = time.Since(start).Milliseconds()

	metrics.RecommendRequests.WithLabelValues(result.Strategy).Inc()
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	s.persistSession(req.UserID, result, newSession)

	return result
}

// runDatabase returns the ranked candidates unmodified.
func (s *Service) runDatabase(ctx context.Context, req domain.RecommendationRequest, limit int) domain.RecommendationResult {
	recs, err := s.source.GetRanked(ctx, req.PreferenceSignals, limit)
	if err != nil {
		return errorResult(StrategyDatabase, err)
	}

	return domain.RecommendationResult{
		Success:         true,
		Recommendations: recs,
		Strategy:        StrategyDatabase,
	}
}

// runGeneration classifies, fetches a broad popular pool independent of the
// preference ranking, and invokes the generator per item directly.
func (s *Service) runGeneration(ctx context.Context, req domain.RecommendationRequest, limit int) domain.RecommendationResult {
	level := domain.LevelBeginner
	if profile, err := s.classifier.Classify(ctx, req.UserID); err == nil {
		level = profile.Level
	}

	pool, err := s.source.GetPopular(ctx, limit*overFetch)
	if err != nil {
		return errorResult(StrategyGeneration, err)
	}
	if len(pool) > limit {
		pool = pool[:limit]
	}

	out := make([]domain.FragranceRecommendation, len(pool))
	copy(out, pool)

	fallbackUsed := false
	for i := range out {
		expl, err := timeout.Run(ctx, func(ctx context.Context) (*domain.AdaptiveExplanation, error) {
			return s.generator.Generate(ctx, explanation.Request{
				Candidate: out[i],
				Level:     level,
			})
		}, timeout.Options[*domain.AdaptiveExplanation]{
			Timeout: s.cfg.GenerationTimeout,
			Label:   "direct_generation",
			Fallback: func() (*domain.AdaptiveExplanation, error) {
				return explanation.Emergency(out[i], level), nil
			},
		})
		if err != nil || expl == nil {
			expl = explanation.Emergency(out[i], level)
		}
		if expl.Source != "generated" {
			fallbackUsed = true
		}
		out[i].AdaptiveExplanation = expl
	}

	return domain.RecommendationResult{
		Success:         true,
		Recommendations: out,
		Strategy:        StrategyGeneration,
		FallbackUsed:    fallbackUsed,
	}
}

// runHybrid is the default: ranked fetch with 2x over-fetch, classify,
// enhance the top items, truncate. Enhancement is an enrichment, never a
// hard dependency — when it fails entirely the ranked list still ships.
func (s *Service) runHybrid(ctx context.Context, req domain.RecommendationRequest, limit int) domain.RecommendationResult {
	recs, err := s.source.GetRanked(ctx, req.PreferenceSignals, limit*overFetch)
	if err != nil {
		return errorResult(StrategyHybrid, err)
	}
	if len(recs) == 0 {
		return domain.RecommendationResult{
			Success:  true,
			Strategy: StrategyHybrid,
		}
	}

	if req.AdaptiveEnabled != nil && !*req.AdaptiveEnabled {
		return domain.RecommendationResult{
			Success:         true,
			Recommendations: truncate(recs, limit),
			Strategy:        StrategyHybrid,
		}
	}

	degraded := false

	level := domain.LevelBeginner
	profile, err := s.classifier.Classify(ctx, req.UserID)
	if err != nil {
		logger.Warn("hybrid_classify_failed", "user_id", req.UserID, "error", err)
		degraded = true
	} else {
		level = profile.Level
	}

	enhanced, fallbackUsed, err := s.enhancer.Enhance(ctx, recs, level, contextFingerprint(req))
	if err != nil {
		logger.Warn("hybrid_enhance_failed", "user_id", req.UserID, "error", err)
		metrics.RecommendDegraded.Inc()

		return domain.RecommendationResult{
			Success:         true,
			Recommendations: truncate(recs, limit),
			Strategy:        StrategyHybrid,
			FallbackUsed:    true,
		}
	}

	return domain.RecommendationResult{
		Success:         true,
		Recommendations: truncate(enhanced, limit),
		Strategy:        StrategyHybrid,
		FallbackUsed:    fallbackUsed || degraded,
	}
}

// ---- helpers ----

// persistSession records the correlation token. A caller-supplied token
// only has its TTL extended; an unknown supplied token is stored fresh.
func (s *Service) persistSession(userID uint, result domain.RecommendationResult, newSession bool) {
	if s.sessions == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if !newSession {
		if err := s.sessions.TouchSession(ctx, result.SessionToken, s.cfg.SessionTTL); err == nil {
			return
		}
	}

	err := s.sessions.SaveSession(ctx, domain.RecommendationSession{
		Token:     result.SessionToken,
		UserID:    userID,
		Strategy:  result.Strategy,
		Count:     result.Count,
		CreatedAt: time.Now(),
	}, s.cfg.SessionTTL)
	if err != nil {
		// best effort only
		logger.Debug("session_persist_failed", "session", result.SessionToken, "error", err)
	}
}

func errorResult(strategy string, err error) domain.RecommendationResult {
	logger.Error("candidate_fetch_failed", "strategy", strategy, "error", err)

	return domain.RecommendationResult{
		Success:         false,
		Recommendations: []domain.FragranceRecommendation{},
		Strategy:        strategy,
		Error:           fmt.Sprintf("candidate fetch failed: %v", err),
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func truncate(recs []domain.FragranceRecommendation, limit int) []domain.FragranceRecommendation {
	if len(recs) > limit {
		return recs[:limit]
	}
	return recs
}

func meanScore(recs []domain.FragranceRecommendation) float64 {
	if len(recs) == 0 {
		return 0
	}

	sum := 0.0
	for _, r := range recs {
		sum += r.Score
	}

	return sum / float64(len(recs))
}

// contextFingerprint builds a stable requester-context string for cache
// keying: user id plus sorted preference signals.
func contextFingerprint(req domain.RecommendationRequest) string {
	keys := make([]string, 0, len(req.PreferenceSignals))
	for k := range req.PreferenceSignals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "user=%d", req.UserID)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%s", k, req.PreferenceSignals[k])
	}

	return b.String()
}
