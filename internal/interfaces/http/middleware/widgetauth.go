package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"klippa/internal/infrastructure/auth"
	"klippa/internal/shared/errors"
	"klippa/internal/shared/logger"
)

// Context keys set by the widget session middleware for downstream handlers.
const (
	ContextKeySessionUserID   = "session_user_id"
	ContextKeySessionVendorID = "session_vendor_id"
)

type WidgetAuthMiddleware struct {
	sessions *auth.WidgetSessionService
	logger   logger.Interface
}

func NewWidgetAuthMiddleware(sessions *auth.WidgetSessionService, logger logger.Interface) *WidgetAuthMiddleware {
	return &WidgetAuthMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

// RequireSession validates the Bearer session token and exposes the
// session identity via the request context.
func (m *WidgetAuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.sessions.ValidateBearer(c.GetHeader("Authorization"))
		if err != nil {
			message := "Invalid or expired session"
			if appErr := errors.GetAppError(err); appErr != nil {
				message = appErr.Message
			}
			m.logger.Warnw("widget session rejected", "error", err, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}

		c.Set(ContextKeySessionUserID, claims.UserID)
		c.Set(ContextKeySessionVendorID, claims.VendorID)

		c.Next()
	}
}
