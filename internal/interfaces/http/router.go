package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"klippa/internal/application/widget/usecases"
	"klippa/internal/infrastructure/auth"
	"klippa/internal/infrastructure/cache"
	"klippa/internal/infrastructure/config"
	"klippa/internal/infrastructure/repository"
	"klippa/internal/interfaces/http/handlers"
	"klippa/internal/interfaces/http/middleware"
	"klippa/internal/interfaces/http/routes"
	"klippa/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine         *gin.Engine
	sessionHandler *handlers.WidgetSessionHandler
	couponHandler  *handlers.CouponHandler
	healthHandler  *handlers.HealthHandler
	authMiddleware *middleware.WidgetAuthMiddleware
	rateLimiter    *middleware.RateLimitMiddleware
	allowedOrigins []string
}

type sessionMinterAdapter struct {
	svc *auth.WidgetSessionService
}

func (a *sessionMinterAdapter) Mint(userID, vendorID string) (*usecases.MintedSession, error) {
	session, err := a.svc.Mint(userID, vendorID)
	if err != nil {
		return nil, err
	}
	return &usecases.MintedSession{
		Token:     session.Token,
		ExpiresIn: session.ExpiresIn,
	}, nil
}

type partnerVerifierAdapter struct {
	verifier *auth.PartnerTokenVerifier
}

func (a *partnerVerifierAdapter) VendorHint(token string) (string, error) {
	return a.verifier.UnverifiedVendor(token)
}

func (a *partnerVerifierAdapter) Verify(ctx context.Context, token, partnerSecret string) (*usecases.VerifiedPartnerToken, error) {
	claims, err := a.verifier.Verify(ctx, token, partnerSecret)
	if err != nil {
		return nil, err
	}
	return &usecases.VerifiedPartnerToken{
		Vendor:         claims.Vendor,
		ExternalUserID: claims.ExternalUserID,
	}, nil
}

type gormPinger struct {
	db *gorm.DB
}

func (p *gormPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type redisPinger struct {
	client *redis.Client
}

func (p *redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	vendorRepo := repository.NewVendorRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)
	couponRepo := repository.NewCouponRepository(db, log)

	sessionSvc := auth.NewWidgetSessionService(cfg.Auth.Session.Secret, cfg.Auth.Session.ExpMinutes)
	minter := &sessionMinterAdapter{sessionSvc}

	guard := cache.NewReplayGuard(redisClient)
	ttlFloor := time.Duration(cfg.Auth.PartnerToken.ReplayTTLFloorSeconds) * time.Second
	verifier := &partnerVerifierAdapter{auth.NewPartnerTokenVerifier(guard, ttlFloor, log)}

	claimWindow := time.Duration(cfg.Widget.ClaimWindowDays) * 24 * time.Hour

	fromTokenUC := usecases.NewCreateSessionFromTokenUseCase(vendorRepo, userRepo, verifier, minter, log)
	fromAPIKeyUC := usecases.NewCreateSessionFromAPIKeyUseCase(vendorRepo, userRepo, minter, log)
	listUC := usecases.NewListAvailableCouponsUseCase(vendorRepo, userRepo, couponRepo, claimWindow, log)
	claimUC := usecases.NewClaimCouponUseCase(vendorRepo, userRepo, couponRepo, claimWindow, log)

	sessionHandler := handlers.NewWidgetSessionHandler(fromTokenUC, fromAPIKeyUC, log)
	couponHandler := handlers.NewCouponHandler(listUC, claimUC, log)
	healthHandler := handlers.NewHealthHandler(&gormPinger{db}, &redisPinger{redisClient}, log)

	authMiddleware := middleware.NewWidgetAuthMiddleware(sessionSvc, log)

	var rateLimiter *middleware.RateLimitMiddleware
	if cfg.Widget.SessionRequestsPerMinute > 0 {
		store := cache.NewSessionRateLimiter(redisClient, cfg.Widget.SessionRequestsPerMinute, time.Minute)
		rateLimiter = middleware.NewRateLimitMiddleware(store, log)
	}

	return &Router{
		engine:         engine,
		sessionHandler: sessionHandler,
		couponHandler:  couponHandler,
		healthHandler:  healthHandler,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		allowedOrigins: cfg.Server.AllowedOrigins,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(logger.NewLogger()))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.allowedOrigins))

	r.engine.GET("/api/health", r.healthHandler.Check)

	routes.SetupWidgetRoutes(r.engine, &routes.WidgetRouteConfig{
		SessionHandler: r.sessionHandler,
		CouponHandler:  r.couponHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
