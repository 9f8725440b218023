package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/bundle-service/internal/middleware"
	"github.com/guttosm/bundle-service/internal/service"
)

// AuthRoutes registers the login route and guards the admin group.
type AuthRoutes struct {
	handler     *AuthHandler
	authService service.AuthService
}

// NewAuthRoutes creates auth routes. A nil authService disables login.
func NewAuthRoutes(authService service.AuthService, audit middleware.LogSink) *AuthRoutes {
	r := &AuthRoutes{authService: authService}
	if authService != nil {
		r.handler = NewAuthHandler(authService, audit)
	}
	return r
}

// RegisterPublicRoutes registers POST /auth/login when JWT auth is enabled.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	if r.handler == nil {
		return
	}
	rg.POST("/auth/login", r.handler.Login)
}

// AdminGroup returns the /admin group with the configured authentication:
// JWT plus the admin role when auth is enabled, otherwise API keys, otherwise
// nothing. Writes are limited per actor and honor Idempotency-Key.
func (r *AuthRoutes) AdminGroup(rg *gin.RouterGroup, cfg *RouterConfig) *gin.RouterGroup {
	admin := rg.Group("/admin")

	switch {
	case r.authService != nil:
		admin.Use(middleware.JWTAuth(r.authService), middleware.RequireRole(service.RoleAdmin))
	case len(cfg.APIKeys) > 0:
		admin.Use(middleware.APIKeyAuth(cfg.APIKeys))
	default:
		log.Warn().Msg("Admin routes are not authenticated: set AUTH_ENABLED or API_KEYS")
	}

	if cfg.RateLimit > 0 {
		actorLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		admin.Use(actorLimiter.ActorRateLimit())
	}
	if cfg.IdempotencyStore != nil {
		admin.Use(middleware.Idempotency(cfg.IdempotencyStore))
	}
	return admin
}
