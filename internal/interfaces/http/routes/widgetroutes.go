package routes

import (
	"github.com/gin-gonic/gin"

	"klippa/internal/interfaces/http/handlers"
	"klippa/internal/interfaces/http/middleware"
)

// WidgetRouteConfig holds dependencies for the widget API routes.
type WidgetRouteConfig struct {
	SessionHandler *handlers.WidgetSessionHandler
	CouponHandler  *handlers.CouponHandler
	AuthMiddleware *middleware.WidgetAuthMiddleware
	RateLimiter    *middleware.RateLimitMiddleware // may be nil when disabled
}

// SetupWidgetRoutes configures the widget API routes.
func SetupWidgetRoutes(engine *gin.Engine, cfg *WidgetRouteConfig) {
	widget := engine.Group("/api/widget")
	{
		// Session-issuing endpoints carry no session yet; they are the
		// rate-limited surface.
		session := widget.Group("")
		if cfg.RateLimiter != nil {
			session.Use(cfg.RateLimiter.LimitByClientIP())
		}
		{
			session.POST("/session-from-token", cfg.SessionHandler.SessionFromToken)
			session.POST("/widget-session", cfg.SessionHandler.WidgetSession)
		}

		authed := widget.Group("")
		authed.Use(cfg.AuthMiddleware.RequireSession())
		{
			authed.GET("/available-coupons", cfg.CouponHandler.ListAvailable)
			authed.POST("/claim", cfg.CouponHandler.Claim)
		}
	}
}
