// Package app wires configuration, storage, services and the HTTP router.
package app

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/bundle-service/config"
	"github.com/guttosm/bundle-service/internal/http"
	"github.com/guttosm/bundle-service/internal/logger"
)

// App is the wired application.
type App struct {
	Router *gin.Engine

	db       *DatabaseComponents
	services *ServiceComponents
	routes   *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	InitializeLogger(cfg.Log)

	db := InitializeDatabase(cfg.Database)
	services := InitializeServices(cfg, db.BundleRepo)
	authService := InitializeAuth(cfg.Auth)
	routes := InitializeRouter(services, db, authService, cfg)

	l := logger.Component("app")
	l.Info().
		Bool("persistent", db.DB != nil).
		Bool("jwt_auth", authService != nil).
		Int("api_keys", len(cfg.Auth.APIKeys)).
		Bool("catalog", services.Catalog != nil).
		Msg("Application initialized")

	return &App{
		Router:   http.NewRouter(routes.Handler, routes.HealthHandler, routes.Config),
		db:       db,
		services: services,
		routes:   routes,
	}
}

// Close flushes pending logs and releases caches and the database connection.
// Call it after the server has stopped.
func (a *App) Close() {
	a.routes.Stop()
	a.services.Stop()
	a.db.Close()
}
