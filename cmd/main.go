// Package main is the entry point for the bundle service.
//
// @title           Bundle Service API
// @version         1.0.0
// @description     Product bundle definitions, priced bundle views and the admin API that manages them.
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/bundle-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token from /api/auth/login.
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 Admin API key, used when JWT auth is disabled.
//
// @tag.name        Bundles
// @tag.description Bundle definitions and priced views
//
// @tag.name        Products
// @tag.description Upstream product catalog
//
// @tag.name        Admin
// @tag.description Bundle administration
//
// @tag.name        Auth
// @tag.description Admin authentication
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	_ "github.com/guttosm/bundle-service/docs" // swagger docs

	"github.com/guttosm/bundle-service/config"
	"github.com/guttosm/bundle-service/internal/app"
)

func main() {
	cfg := config.Load()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server.Port, cfg.Server.RequestTimeout)

	err := server.Run(context.Background())
	application.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
