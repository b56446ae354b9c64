package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"klippa/internal/shared/logger"
)

// Pinger reports reachability of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports process liveness and backing store reachability.
type HealthHandler struct {
	db     Pinger
	redis  Pinger
	logger logger.Interface
}

func NewHealthHandler(db, redis Pinger, logger logger.Interface) *HealthHandler {
	return &HealthHandler{
		db:     db,
		redis:  redis,
		logger: logger,
	}
}

// Check responds 200 when all backing stores answer, 503 otherwise.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Errorw("database health check failed", "error", err)
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if err := h.redis.Ping(ctx); err != nil {
		h.logger.Errorw("redis health check failed", "error", err)
		checks["redis"] = "unreachable"
		status = http.StatusServiceUnavailable
	} else {
		checks["redis"] = "ok"
	}

	body := gin.H{"status": "ok", "checks": checks}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}
