package explanation

import (
	"context"
	"fmt"
	"time"

	"scentMatch/domain"
	"scentMatch/pkg/logger"
	"scentMatch/pkg/timeout"
)

// TextProvider is the raw generation collaborator. It may hang or error;
// the generator only ever reaches it through the timeout executor.
type TextProvider interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// Request is one candidate/level pair to explain.
type Request struct {
	Candidate domain.FragranceRecommendation
	Level     domain.ExperienceLevel
}

type Generator struct {
	provider    TextProvider
	maxAttempts int
	genTimeout  time.Duration
}

func NewGenerator(provider TextProvider, maxAttempts int, genTimeout time.Duration) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if genTimeout <= 0 {
		genTimeout = 15 * time.Second
	}

	return &Generator{
		provider:    provider,
		maxAttempts: maxAttempts,
		genTimeout:  genTimeout,
	}
}

// Generate drives the prompt/validate loop for a single candidate.
//
// Up to maxAttempts attempts; later attempts append corrective guidance and
// lower the sampling temperature. The best-scoring attempt wins, with an
// early exit the moment one validates clean. An attempt that produces text
// always beats no text, even at score zero; only a loop in which every
// attempt failed to execute returns ErrExhaustedRetries.
func (g *Generator) Generate(ctx context.Context, req Request) (*domain.AdaptiveExplanation, error) {
	style := StyleFor(req.Level)

	var best *domain.ExplanationAttempt
	var lastErr error
	executed := 0

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		spec := BuildPrompt(style, req.Candidate, attempt)

		text, err := timeout.Run(ctx, func(ctx context.Context) (string, error) {
			return g.provider.Generate(ctx, spec.Prompt, spec.MaxTokens, spec.Temperature)
		}, timeout.Options[string]{
			Timeout: g.genTimeout,
			Label:   "explanation_generation",
		})
		if err != nil {
			lastErr = err
			generationAttemptsTotal.WithLabelValues("error").Inc()
			continue
		}

		executed++
		validation := Validate(text, style)
		generationAttemptsTotal.WithLabelValues("ok").Inc()

		logger.Debug("explanation_attempt",
			"fragrance_id", req.Candidate.FragranceID,
			"level", string(req.Level),
			"attempt", attempt+1,
			"word_count", validation.WordCount,
			"score", validation.Score,
			"valid", validation.Valid(),
		)

		if best == nil || validation.Score > best.Validation.Score {
			best = &domain.ExplanationAttempt{
				Text:       text,
				Validation: validation,
				Attempt:    attempt + 1,
			}
		}

		if validation.Valid() {
			break
		}
	}

	if executed == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrExhaustedRetries, lastErr)
		}
		return nil, ErrExhaustedRetries
	}

	return g.assemble(req, style, best), nil
}

// assemble decorates the winning attempt with the auxiliary content.
func (g *Generator) assemble(req Request, style Style, best *domain.ExplanationAttempt) *domain.AdaptiveExplanation {
	expl := &domain.AdaptiveExplanation{
		Level:             req.Level,
		ConfidenceMessage: confidenceMessageFor(req.Level),
		Tips:              TipsForCategory(req.Candidate.Category),
		Score:             best.Validation.Score,
		Source:            "generated",
	}

	if style.IncludeSummary {
		expl.Summary = best.Text
	} else {
		expl.Summary = firstSentence(best.Text)
		expl.Expanded = best.Text
	}

	if style.IncludeEducational {
		expl.EducationalTerms = EducationalTerms(best.Text)
	}

	return expl
}
