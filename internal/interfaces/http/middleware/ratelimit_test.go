package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"klippa/internal/shared/logger"
)

type fakeRateLimitStore struct {
	allowed bool
	err     error
	keys    []string
}

func (f *fakeRateLimitStore) Allow(ctx context.Context, key string) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allowed, f.err
}

func rateLimitedRouter(store RateLimitStore) *gin.Engine {
	router := gin.New()
	mw := NewRateLimitMiddleware(store, logger.NewNop())
	router.POST("/limited", mw.LimitByClientIP(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestRateLimitMiddleware_LimitByClientIP(t *testing.T) {
	t.Run("allowed request passes through", func(t *testing.T) {
		store := &fakeRateLimitStore{allowed: true}
		w := httptest.NewRecorder()
		rateLimitedRouter(store).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Len(t, store.keys, 1)
	})

	t.Run("exhausted window is throttled", func(t *testing.T) {
		store := &fakeRateLimitStore{allowed: false}
		w := httptest.NewRecorder()
		rateLimitedRouter(store).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("store failure does not block traffic", func(t *testing.T) {
		store := &fakeRateLimitStore{allowed: false, err: stderrors.New("redis down")}
		w := httptest.NewRecorder()
		rateLimitedRouter(store).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
