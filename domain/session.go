package domain

import "time"

// RecommendationSession is the per-request correlation record kept in redis.
// Best-effort only: losing it never fails a request.
type RecommendationSession struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"user_id,omitempty"`
	Strategy  string    `json:"strategy"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}
