package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"klippa/internal/shared/logger"
)

// RateLimitStore decides whether a request under the given key may proceed.
type RateLimitStore interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type RateLimitMiddleware struct {
	store  RateLimitStore
	logger logger.Interface
}

func NewRateLimitMiddleware(store RateLimitStore, logger logger.Interface) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		store:  store,
		logger: logger,
	}
}

// LimitByClientIP throttles requests per client IP. Store errors do not
// block traffic; the store itself already logs and fails open.
func (m *RateLimitMiddleware) LimitByClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := m.store.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			m.logger.Warnw("rate limit check failed", "error", err, "client_ip", c.ClientIP())
		}
		if !allowed && err == nil {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}
