package app

import (
	"context"

	"github.com/guttosm/bundle-service/config"
	"github.com/guttosm/bundle-service/internal/http"
	"github.com/guttosm/bundle-service/internal/middleware"
	"github.com/guttosm/bundle-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig

	asyncLogger      *middleware.AsyncLogger
	idempotencyStore middleware.IdempotencyStore
}

// Stop drains pending log entries and stops the idempotency sweeper.
func (r *RouterComponents) Stop() {
	if r == nil {
		return
	}
	r.asyncLogger.Stop()
	if r.idempotencyStore != nil {
		r.idempotencyStore.Stop()
	}
}

// InitializeRouter creates the handlers, health checks and router configuration.
func InitializeRouter(
	services *ServiceComponents,
	db *DatabaseComponents,
	authService service.AuthService,
	cfg config.Config,
) *RouterComponents {
	var loggingService service.LoggingService
	if db != nil {
		loggingService = db.LoggingService
	}

	components := &RouterComponents{HealthHandler: http.NewHealthHandler()}

	// A nil *AsyncLogger must not become a non-nil LogSink.
	var sink middleware.LogSink
	if al := middleware.NewAsyncLogger(loggingService, middleware.DefaultAsyncLoggerConfig()); al != nil {
		components.asyncLogger = al
		sink = al
	}

	components.Handler = http.NewHandler(services.Bundles, sink)

	if db != nil && db.DB != nil {
		mongo := db.DB
		components.HealthHandler.RegisterChecker("mongodb", http.HealthCheckerFunc(func(ctx context.Context) error {
			return mongo.HealthCheck(ctx)
		}))
		components.HealthHandler.RegisterCircuitBreaker("mongodb_bundles", db.BundlesCircuitBreaker)
		components.HealthHandler.RegisterCircuitBreaker("mongodb_logs", db.LogsCircuitBreaker)
	}

	if cfg.Server.IdempotencyTTL > 0 {
		components.idempotencyStore = middleware.NewIdempotencyStore(cfg.Server.IdempotencyTTL)
	}

	components.Config = http.RouterConfig{
		RateLimit:        cfg.Server.RateLimit,
		RateWindow:       cfg.Server.RateWindow,
		RequestTimeout:   cfg.Server.RequestTimeout,
		CORSOrigins:      cfg.Server.CORSOrigins,
		SwaggerUser:      cfg.Server.SwaggerUser,
		SwaggerPass:      cfg.Server.SwaggerPass,
		APIKeys:          cfg.Auth.APIKeys,
		AuthService:      authService,
		LoggingService:   loggingService,
		LogSink:          sink,
		IdempotencyStore: components.idempotencyStore,
	}
	return components
}
