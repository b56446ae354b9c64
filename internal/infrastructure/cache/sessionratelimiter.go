package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateKeyPrefix = "widget_session_rate:"

// SessionRateLimiter is a sliding-window limiter for the session-issuing
// endpoints, keyed by caller identity (client IP). It protects the token
// exchange from brute-forcing API keys and partner tokens.
type SessionRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewSessionRateLimiter creates a limiter allowing limit requests per
// window per key. A non-positive limit disables limiting.
func NewSessionRateLimiter(client *redis.Client, limit int, window time.Duration) *SessionRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &SessionRateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow reports whether the caller identified by key may proceed. On a
// Redis error the limiter allows the request: rate limiting is protection,
// not a correctness mechanism, and must not take the widget down with the
// store.
func (l *SessionRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	now := time.Now()
	redisKey := rateKeyPrefix + key
	windowStart := now.Add(-l.window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, redisKey, l.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return true, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}

	return zcard.Val() < int64(l.limit), nil
}

// Reset clears the window for a key.
func (l *SessionRateLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, rateKeyPrefix+key).Err()
}
