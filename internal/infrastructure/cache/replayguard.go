// Package cache provides Redis-backed stores for once-only markers and
// rate limiting.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const replayKeyPrefix = "partner_jti:"

// ReplayGuard is a Redis-backed once-only marker keyed by vendor and
// token jti. Partners generate jtis independently, so uniqueness is only
// required within a vendor. SETNX makes the check-and-mark atomic: exactly
// one of N concurrent callers presenting the same key within its TTL
// window observes accepted. Entries expire with the TTL; no explicit
// cleanup is needed since partner tokens are short-lived by construction.
type ReplayGuard struct {
	client *redis.Client
}

// NewReplayGuard creates a new ReplayGuard instance
func NewReplayGuard(client *redis.Client) *ReplayGuard {
	return &ReplayGuard{client: client}
}

// Claim atomically marks the vendor's jti as seen for ttl. Returns false
// when the jti was already marked for that vendor. Errors indicate the
// store is unreachable; the caller decides the fail-closed behavior.
func (g *ReplayGuard) Claim(ctx context.Context, vendor, jti string, ttl time.Duration) (bool, error) {
	if vendor == "" {
		return false, fmt.Errorf("vendor must not be empty")
	}
	if jti == "" {
		return false, fmt.Errorf("jti must not be empty")
	}
	if ttl <= 0 {
		ttl = time.Minute
	}

	accepted, err := g.client.SetNX(ctx, replayKeyPrefix+vendor+":"+jti, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim jti marker: %w", err)
	}
	return accepted, nil
}

// Ping reports whether the backing store is reachable. The health endpoint
// surfaces this, since replay-store availability is a hard dependency of
// the signed-token path.
func (g *ReplayGuard) Ping(ctx context.Context) error {
	return g.client.Ping(ctx).Err()
}
