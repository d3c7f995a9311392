// Package enhancer applies the explanation generator to the top candidates
// of a ranked batch, under bounded concurrency, with per-item timeouts and
// an always-valid templated fallback.
package enhancer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"scentMatch/business/explanation"
	"scentMatch/domain"
	"scentMatch/pkg/cache"
	"scentMatch/pkg/config"
	"scentMatch/pkg/logger"
	"scentMatch/pkg/timeout"
)

// ExplanationGenerator produces one explanation per candidate/level pair.
type ExplanationGenerator interface {
	Generate(ctx context.Context, req explanation.Request) (*domain.AdaptiveExplanation, error)
}

type Enhancer struct {
	generator ExplanationGenerator
	cache     *cache.Cache
	cfg       config.ExplanationConfig
}

func NewEnhancer(generator ExplanationGenerator, c *cache.Cache, cfg config.ExplanationConfig) *Enhancer {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 3
	}
	if cfg.ItemTimeout <= 0 {
		// one generation plus retry headroom, still under the batch budget
		cfg.ItemTimeout = cfg.GenerationTimeout + cfg.GenerationTimeout/2
	}
	if cfg.ItemTimeout <= 0 {
		cfg.ItemTimeout = 20 * time.Second
	}

	return &Enhancer{
		generator: generator,
		cache:     c,
		cfg:       cfg,
	}
}

// Enhance decorates the top-K candidates with adaptive explanations and
// passes the rest through untouched, preserving the ranked order. Items are
// dispatched in ranked order but may complete out of order; the indexed
// result slice reassembles them. The boolean reports whether any item fell
// back to the emergency template.
func (e *Enhancer) Enhance(
	ctx context.Context,
	recs []domain.FragranceRecommendation,
	level domain.ExperienceLevel,
	requesterCtx string,
) ([]domain.FragranceRecommendation, bool, error) {

	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("context error: %w", err)
	}

	out := make([]domain.FragranceRecommendation, len(recs))
	copy(out, recs)

	k := e.cfg.TopK
	if k > len(out) {
		k = len(out)
	}
	if k == 0 {
		return out, false, nil
	}

	start := time.Now()

	var generated, fromCache, emergencies atomic.Int64

	sem := make(chan struct{}, e.cfg.MaxConcurrent)
	var wg sync.WaitGroup

	for i := 0; i < k; i++ {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			expl, source := e.explainOne(ctx, out[idx], level, requesterCtx)
			out[idx].AdaptiveExplanation = expl

			switch source {
			case "cache":
				fromCache.Add(1)
			case "generated":
				generated.Add(1)
			default:
				emergencies.Add(1)
			}
			enhancedItemsTotal.WithLabelValues(source).Inc()
		}(i)
	}

	wg.Wait()

	elapsed := time.Since(start)
	logger.Info("batch_enhanced",
		"items", k,
		"generated", generated.Load(),
		"cache", fromCache.Load(),
		"emergency", emergencies.Load(),
		"level", string(level),
		"elapsed_ms", elapsed.Milliseconds(),
	)

	if elapsed > e.cfg.BatchTimeout {
		logger.Warn("batch_budget_exceeded",
			"elapsed_ms", elapsed.Milliseconds(),
			"budget_ms", e.cfg.BatchTimeout.Milliseconds(),
		)
	}

	return out, emergencies.Load() > 0, nil
}

// explainOne resolves a single item: cache, then generation under the
// per-item deadline, then the emergency template. It always returns a
// non-nil explanation.
func (e *Enhancer) explainOne(
	ctx context.Context,
	candidate domain.FragranceRecommendation,
	level domain.ExperienceLevel,
	requesterCtx string,
) (*domain.AdaptiveExplanation, string) {

	key := CacheKey(candidate.FragranceID, level, requesterCtx)

	if cached, ok := e.cache.Get(key); ok {
		if expl, ok := cached.(*domain.AdaptiveExplanation); ok {
			hit := *expl
			hit.Source = "cache"
			return &hit, "cache"
		}
	}

	expl, err := timeout.Run(ctx, func(ctx context.Context) (*domain.AdaptiveExplanation, error) {
		return e.generator.Generate(ctx, explanation.Request{
			Candidate: candidate,
			Level:     level,
		})
	}, timeout.Options[*domain.AdaptiveExplanation]{
		Timeout: e.cfg.ItemTimeout,
		Label:   "item_enhancement",
		Fallback: func() (*domain.AdaptiveExplanation, error) {
			return explanation.Emergency(candidate, level), nil
		},
	})
	if err != nil || expl == nil {
		// belt and braces: the fallback cannot fail, but a cancelled
		// context can still surface here
		return explanation.Emergency(candidate, level), "emergency"
	}

	if expl.Source == "generated" {
		e.cache.Set(key, expl, e.cfg.CacheTTL)
		return expl, "generated"
	}

	return expl, "emergency"
}

// CacheKey hashes (fragrance id, level, requester context) into a
// fixed-width token so free-text context never leaks into key cardinality.
func CacheKey(fragranceID uint64, level domain.ExperienceLevel, requesterCtx string) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%d|%s|%s", fragranceID, level, requesterCtx))
	return "explanation:" + hex.EncodeToString(sum[:16])
}
