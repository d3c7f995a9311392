//go:build !integration

package recommender

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"scentMatch/business/explanation"
	"scentMatch/domain"
	"scentMatch/pkg/config"
)

// ---- fakes ----

type fakeSource struct {
	ranked       []domain.FragranceRecommendation
	popular      []domain.FragranceRecommendation
	rankedErr    error
	popularErr   error
	rankedLimit  int
	popularLimit int
}

func (f *fakeSource) GetRanked(ctx context.Context, signals map[string]string, limit int) ([]domain.FragranceRecommendation, error) {
	f.rankedLimit = limit
	if f.rankedErr != nil {
		return nil, f.rankedErr
	}
	if limit > len(f.ranked) {
		limit = len(f.ranked)
	}
	return f.ranked[:limit], nil
}

func (f *fakeSource) GetPopular(ctx context.Context, limit int) ([]domain.FragranceRecommendation, error) {
	f.popularLimit = limit
	if f.popularErr != nil {
		return nil, f.popularErr
	}
	if limit > len(f.popular) {
		limit = len(f.popular)
	}
	return f.popular[:limit], nil
}

type fakeClassifier struct {
	profile domain.ExperienceProfile
	err     error
	calls   int
}

func (f *fakeClassifier) Classify(ctx context.Context, userID uint) (domain.ExperienceProfile, error) {
	f.calls++
	return f.profile, f.err
}

type fakeEnhancer struct {
	err       error
	fallback  bool
	lastLevel domain.ExperienceLevel
	calls     int
}

func (f *fakeEnhancer) Enhance(ctx context.Context, recs []domain.FragranceRecommendation, level domain.ExperienceLevel, requesterCtx string) ([]domain.FragranceRecommendation, bool, error) {
	f.calls++
	f.lastLevel = level
	if f.err != nil {
		return nil, false, f.err
	}

	out := make([]domain.FragranceRecommendation, len(recs))
	copy(out, recs)
	for i := range out {
		out[i].AdaptiveExplanation = &domain.AdaptiveExplanation{
			Level:   level,
			Summary: fmt.Sprintf("enhanced %d", out[i].FragranceID),
			Source:  "generated",
		}
	}
	return out, f.fallback, nil
}

type fakeDirectGenerator struct {
	err   error
	calls int
}

func (f *fakeDirectGenerator) Generate(ctx context.Context, req explanation.Request) (*domain.AdaptiveExplanation, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &domain.AdaptiveExplanation{
		Level:   req.Level,
		Summary: fmt.Sprintf("direct %d", req.Candidate.FragranceID),
		Source:  "generated",
	}, nil
}

type fakeSessionStore struct {
	saved    []domain.RecommendationSession
	touched  []string
	err      error
	touchErr error
}

func (f *fakeSessionStore) SaveSession(ctx context.Context, session domain.RecommendationSession, ttl time.Duration) error {
	f.saved = append(f.saved, session)
	return f.err
}

func (f *fakeSessionStore) TouchSession(ctx context.Context, token string, ttl time.Duration) error {
	f.touched = append(f.touched, token)
	return f.touchErr
}

// ---- helpers ----

func rankedCandidates(n int) []domain.FragranceRecommendation {
	recs := make([]domain.FragranceRecommendation, n)
	for i := range recs {
		recs[i] = domain.FragranceRecommendation{
			FragranceID: uint64(i + 1),
			Name:        fmt.Sprintf("Fragrance %d", i+1),
			Score:       1 - float64(i)*0.05,
		}
	}
	return recs
}

func serviceConfig() config.ExplanationConfig {
	return config.ExplanationConfig{
		TopK:              5,
		MaxConcurrent:     3,
		MaxAttempts:       3,
		GenerationTimeout: time.Second,
		BatchTimeout:      time.Second,
		SessionTTL:        time.Hour,
	}
}

func newTestService(source *fakeSource, classifier *fakeClassifier, enh *fakeEnhancer, gen *fakeDirectGenerator, sessions *fakeSessionStore) *Service {
	return NewService(source, classifier, enh, gen, sessions, serviceConfig())
}

// ---- hybrid ----

func TestRecommend_HybridHappyPath(t *testing.T) {
	source := &fakeSource{ranked: rankedCandidates(20)}
	classifier := &fakeClassifier{profile: domain.ExperienceProfile{Level: domain.LevelIntermediate, Confidence: 0.8}}
	enh := &fakeEnhancer{}
	sessions := &fakeSessionStore{}
	svc := newTestService(source, classifier, enh, &fakeDirectGenerator{}, sessions)

	result := svc.Recommend(context.Background(), domain.RecommendationRequest{
		UserID: 7,
		Limit:  5,
	})

	if !result.Success {
		t.Fatalf("success = false: %s", result.Error)
	}
	if result.Strategy != StrategyHybrid {
		t.Fatalf("strategy = %s, want hybrid default", result.Strategy)
	}
	if result.Count != 5 || len(result.Recommendations) != 5 {
		t.Fatalf("count = %d, want 5", result.Count)
	}
	if source.rankedLimit != 10 {
		t.Fatalf("ranked fetch limit = %d, want 2x over-fetch", source.rankedLimit)
	}
	if enh.lastLevel != domain.LevelIntermediate {
		t.Fatalf("enhanced at level %s, want intermediate", enh.lastLevel)
	}
	if result.FallbackUsed {
		t.Fatal("fallback_used must be false on clean runs")
	}
	if result.SessionToken == "" {
		t.Fatal("missing session token")
	}
	if len(sessions.saved) != 1 || sessions.saved[0].Token != result.SessionToken {
		t.Fatalf("session save = %+v", sessions.saved)
	}
	for i, rec := range result.Recommendations {
		if rec.AdaptiveExplanation == nil {
			t.Fatalf("item %d missing explanation", i)
		}
	}
}

func TestRecommend_HybridConfidenceIsMeanScore(t *testing.T) {
	source := &fakeSource{ranked: []domain.FragranceRecommendation{
		{FragranceID: 1, Score: 0.9},
		{FragranceID: 2, Score: 0.7},
		{FragranceID: 3, Score: 0.5},
	}}
	svc := newTestService(source, &fakeClassifier{}, &fakeEnhancer{}, &fakeDirectGenerator{}, &fakeSessionStore{})

	result := svc.Recommend(context.Background(), domain.RecommendationRequest{Limit: 3})

	want := (0.9 + 0.7 + 0.5) / 3
	if math.Abs(result.Confidence-want) > 1e-9 {
		t.Fatalf("confidence = %f, want %f", result.Confidence, want)
	}
}

func TestRecommend_HybridEnhancerFailureDegradesGracefully(t *testing.T) {
	source := &fakeSource{ranked: rankedCandidates(20)}
	enh := &fakeEnhancer{err: errors.New("enhancement blew up")}
	svc := newTestService(source, &fakeClassifier{}, enh, &fakeDirectGenerator{}, &fakeSessionStore{})

	result := svc.Recommend(context.Background(), domain.RecommendationRequest{Limit: 5})

	if !result.Success {
		t.Fatal("enhancement failure must not fail the request")
	}
	if !result.FallbackUsed {
		t.Fatal("degraded run must report fallback")
	}
	if result.Count != 5 {
		t.Fatalf("count = %d, want the un-enhanced ranked items", result.Count)
	}
	for i, rec := range result.Recommendations {
		if rec.AdaptiveExplanation != nil {
			t.Fatalf("item %d carries explanation despite enhancer failure", i)
		}
	}
}

func TestRecommend_HybridClassifierFailureStillEnhances(t *testing.T) {
	source := &fakeSource{ranked: rankedCandidates(10)}
	classifier := &fakeClassifier{err: errors.New("signals unavailable")}
	enh := &fakeEnhancer{}
	svc := newTestService(source, classifier, enh, &fakeDirectGenerator{}, &fakeSessionStore{})

	result := svc.Recommend(context.Background(), domain.RecommendationRequest{UserID: 7, Limit: 3})

	if !result.Success || !result.FallbackUsed {
		t.Fatalf("success=%v fallback=%v, want degraded success", result.Success, result.FallbackUsed)
	}
	if enh.lastLevel != domain.LevelBeginner {
		t.Fatalf("level = %s, want beginner default", enh.lastLevel)
	}
}

func TestRecommend_HybridCandidateFetchFailureFailsRequest(t *testing.T) {
	source := &fakeSource{rankedErr: errors.New("db down")}
	svc := newTestService(source, &fakeClassifier{}, &fakeEnhancer{}, &fakeDirectGenerator{}, &fakeSessionStore{})

	result := svc.Recommend(context.Background(), domain.RecommendationRequest{Limit: 5})

	if result.Success {
		t.Fatal("a candidate fetch failure is a hard failure")
	}
	if result.Error == "" {
		t.Fatal("error message missing")
	}
	if result.Recommendations == nil || len(result.Recommendations) != 0 {
		t.Fatalf("recommendations = %v, want empty non-nil slice", result.Recommendations)
	}
}

func TestRecommend_HybridAdaptiveDisabledSkipsEnhancement(t *testing.T) {
	source := &fakeSource{ranked: rankedCandidates(10)}
	classifier := &fakeClassifier{}
	enh := &fakeEnhancer{}
	svc := newTestService(source, classifier, enh, &fakeDirectGenerator{}, &fakeSessionStore{})

	disabled := false
	result := svc.Recommend(context.Background(), domain.RecommendationRequest{
		Limit:           3,
		AdaptiveEnabled: &disabled,
	})

	if !result.Success || result.Count != 3 {
		t.Fatalf("result = %+v", result)
	}
	if classifier.calls != 0 || enh.calls != 0 {
		t.Fatal("disabled adaptive path must skip classification and enhancement")
	}
}

func TestRecommend_EmptyCandidatesIsSuccess(t *testing.T) {
	svc := newTestService(&fakeSource{}, &fakeClassifier{}, &fakeEnhancer{}, &fakeDirectGenerator{}, &fakeSessionStore{})

	result := svc.Recommend(context.Background(), domain.RecommendationRequest{Limit: 5})

	if !result.Success || result.Count != 0 || result.Confidence != 0 {
		t.Fatalf("result = %+v, want empty success", result)
	}
}

// ---- limits and tokens ----

func TestRecommend_LimitDefaultsAndClamps(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, defaultLimit},
		{-5, defaultLimit},
		{10, 10},
		{500, maxLimit},
	}

	for _, tc := range cases {
		source := &fakeSource{ranked: rankedCandidates(120)}
		svc := newTestService(source, &fakeClassifier{}, &fakeEnhancer{}, &fakeDirectGenerator{}, &fakeSessionStore{})

		result := svc.Recommend(context.Background(), domain.RecommendationRequest{Limit: tc.in})
		if result.Count != tc.want {
			t.Fatalf("limit %d: count = %d, want %d", tc.in, result.Count, tc.want)
		}
	}
}

func TestRecommend_ExistingSessionTokenIsReused(t *testing.T) {
	source := &fakeSource{ranked: rankedCandidates(5)}
	sessions := &fakeSessionStore{}
	svc := newTestService(source, &fakeClassifier{}, &fakeEnhancer{}, &fakeDirectGenerator{}, sessions)

	result := svc.Recommend(context.Background(), domain.RecommendationRequest{
		SessionToken: "existing-token",
		Limit:        2,
	})

	if result.SessionToken != "existing-token" {
		t.Fatalf("token = %q, want existing-token", result.SessionToken)
	}
	if len(sessions.touched) != 1 || sessions.touched[0] != "existing-token" {
		t.Fatalf("touched = %v, want TTL refresh of the supplied token", sessions.touched)
	}
	if len(sessions.saved) != 0 {
		t.Fatalf("saved = %v, want no rewrite of an existing session", sessions.saved)
	}
}

func TestRecommend_UnknownSuppliedTokenIsStoredFresh(t *testing.T) {
	source := &fakeSource{ranked: rankedCandidates(5)}
	sessions := &fakeSessionStore{touchErr: errors.New("session not found")}
	svc := newTestService(source, &fakeClassifier{}, &fakeEnhancer{}, &fakeDirectGenerator{}, sessions)

	svc.Recommend(context.Background(), domain.RecommendationRequest{
		SessionToken: "stale-token",
		Limit:        2,
	})

	if len(sessions.saved) != 1 || sessions.saved[0].Token != "stale-token" {
		t.Fatalf("saved = %v, want fresh record for the stale token", sessions.saved)
	}
}

func TestRecommend_SessionSaveFailureIsIgnored(t *testing.T) {
	source := &fakeSource{ranked: rankedCandidates(5)}
	sessions := &fakeSessionStore{err: errors.New("redis down")}
	svc := newTestService(source, &fakeClassifier{}, &fakeEnhancer{}, &fakeDirectGenerator{}, sessions)

	result := svc.Recommend(context.Background(), domain.RecommendationRequest{Limit: 2})
	if !result.Success {
		t.Fatal("session persistence is best effort only")
	}
}

// ---- database strategy ----

func TestRecommend_DatabaseStrategySkipsEnhancement(t *testing.T) {
	source := &fakeSource{ranked: rankedCandidates(10)}
	enh := &fakeEnhancer{}
	svc := newTestService(source, &fakeClassifier{}, enh, &fakeDirectGenerator{}, &fakeSessionStore{})

	result := svc.Recommend(context.Background(), domain.RecommendationRequest{
		Strategy: StrategyDatabase,
		Limit:    4,
	})

	if !result.Success || result.Strategy != StrategyDatabase {
		t.Fatalf("result = %+v", result)
	}
	if enh.calls != 0 {
		t.Fatal("database strategy must not enhance")
	}
	if source.rankedLimit != 4 {
		t.Fatalf("ranked limit = %d, want exact limit without over-fetch", source.rankedLimit)
	}
}

// ---- generation strategy ----

func TestRecommend_GenerationStrategyExplainsEveryItem(t *testing.T) {
	source := &fakeSource{popular: rankedCandidates(20)}
	gen := &fakeDirectGenerator{}
	svc := newTestService(source, &fakeClassifier{profile: domain.ExperienceProfile{Level: domain.LevelAdvanced}}, &fakeEnhancer{}, gen, &fakeSessionStore{})

	result := svc.Recommend(context.Background(), domain.RecommendationRequest{
		Strategy: StrategyGeneration,
		UserID:   7,
		Limit:    4,
	})

	if !result.Success || result.Count != 4 {
		t.Fatalf("result = %+v", result)
	}
	if gen.calls != 4 {
		t.Fatalf("generator calls = %d, want 4", gen.calls)
	}
	for i, rec := range result.Recommendations {
		if rec.AdaptiveExplanation == nil {
			t.Fatalf("item %d missing explanation", i)
		}
		if rec.AdaptiveExplanation.Level != domain.LevelAdvanced {
			t.Fatalf("item %d level = %s", i, rec.AdaptiveExplanation.Level)
		}
	}
	if result.FallbackUsed {
		t.Fatal("clean generation run must not report fallback")
	}
}

func TestRecommend_GenerationFailureFallsBackToTemplates(t *testing.T) {
	source := &fakeSource{popular: rankedCandidates(6)}
	gen := &fakeDirectGenerator{err: errors.New("provider down")}
	svc := newTestService(source, &fakeClassifier{}, &fakeEnhancer{}, gen, &fakeSessionStore{})

	result := svc.Recommend(context.Background(), domain.RecommendationRequest{
		Strategy: StrategyGeneration,
		Limit:    3,
	})

	if !result.Success {
		t.Fatal("generation failures must degrade, not fail")
	}
	if !result.FallbackUsed {
		t.Fatal("template fallback must be reported")
	}
	for i, rec := range result.Recommendations {
		if rec.AdaptiveExplanation == nil || rec.AdaptiveExplanation.Source != "emergency" {
			t.Fatalf("item %d explanation = %+v, want emergency", i, rec.AdaptiveExplanation)
		}
	}
}

// ---- end to end through real collaborators ----

func TestRecommend_AnonymousHybridEndToEnd(t *testing.T) {
	source := &fakeSource{ranked: rankedCandidates(10)}
	enh := &fakeEnhancer{}
	svc := newTestService(source, &fakeClassifier{profile: domain.ExperienceProfile{Level: domain.LevelBeginner, Confidence: 0.9}}, enh, &fakeDirectGenerator{}, &fakeSessionStore{})

	result := svc.Recommend(context.Background(), domain.RecommendationRequest{Limit: 5})

	if !result.Success || result.Count != 5 {
		t.Fatalf("result = %+v", result)
	}
	if enh.lastLevel != domain.LevelBeginner {
		t.Fatalf("anonymous users enhance at %s, want beginner", enh.lastLevel)
	}
	if result.ElapsedMs < 0 {
		t.Fatalf("elapsed = %d", result.ElapsedMs)
	}
}
