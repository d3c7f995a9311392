package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"scentMatch/domain"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound reports a missing or expired session token.
var ErrSessionNotFound = errors.New("session not found")

type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
	}
}

// SaveSession stores the per-request correlation record with a TTL.
func (r *SessionRepository) SaveSession(ctx context.Context, session domain.RecommendationSession, ttl time.Duration) error {
	key := fmt.Sprintf("session:reco:%s", session.Token)

	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	return nil
}

// GetSession retrieves a session by its correlation token.
func (r *SessionRepository) GetSession(ctx context.Context, token string) (*domain.RecommendationSession, error) {
	key := fmt.Sprintf("session:reco:%s", token)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var session domain.RecommendationSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// TouchSession extends an existing session's expiry.
func (r *SessionRepository) TouchSession(ctx context.Context, token string, ttl time.Duration) error {
	key := fmt.Sprintf("session:reco:%s", token)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check session existence: %w", err)
	}
	if exists == 0 {
		return ErrSessionNotFound
	}

	if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("failed to refresh session TTL: %w", err)
	}

	return nil
}
