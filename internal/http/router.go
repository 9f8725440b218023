package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/i18n"
	"github.com/guttosm/bundle-service/internal/metrics"
	"github.com/guttosm/bundle-service/internal/middleware"
	"github.com/guttosm/bundle-service/internal/service"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string

	// APIKeys guard the admin routes when AuthService is nil.
	APIKeys map[string]bool
	// AuthService enables JWT login and role checks on the admin routes.
	AuthService service.AuthService
	// LoggingService enables the audit log query endpoint.
	LoggingService service.LoggingService
	// LogSink receives request and audit log entries.
	LogSink middleware.LogSink
	// IdempotencyStore enables Idempotency-Key replay on admin writes.
	IdempotencyStore middleware.IdempotencyStore
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: middleware.DefaultRequestTimeout,
		CORSOrigins:    middleware.DefaultCORSOrigins,
	}
}

// NewRouter creates and configures the gin router for the bundle service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)
	router.NoRoute(notFound)

	api := router.Group("/api")
	api.Use(middleware.Timeout(cfg.RequestTimeout))

	authRoutes := NewAuthRoutes(cfg.AuthService, cfg.LogSink)
	authRoutes.RegisterPublicRoutes(api)

	bundleRoutes := NewBundleRoutes(handler)
	bundleRoutes.RegisterPublicRoutes(api)

	admin := authRoutes.AdminGroup(api, &cfg)
	bundleRoutes.RegisterProtectedRoutes(admin, &cfg)
	if cfg.LoggingService != nil {
		NewAuditRoutes(cfg.LoggingService).RegisterProtectedRoutes(admin, &cfg)
	}

	return router
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound,
		dto.NewError(dto.ErrCodeNotFound, i18n.T(c, i18n.ErrKeyNotFound)).WithRequestID(middleware.GetRequestID(c)))
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LogSink),
		middleware.ErrorHandler(),
	)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler == nil {
		healthHandler = NewHealthHandler()
	}
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
