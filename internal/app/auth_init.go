package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/bundle-service/config"
	"github.com/guttosm/bundle-service/internal/service"
)

const defaultJWTSecret = "change-me-in-production"

// InitializeAuth builds the admin auth service. It returns nil when JWT auth
// is disabled, leaving the admin routes to API keys.
func InitializeAuth(cfg config.AuthConfig) service.AuthService {
	if !cfg.Enabled {
		return nil
	}

	if cfg.JWTSecretKey == "" || cfg.JWTSecretKey == defaultJWTSecret {
		log.Warn().Msg("JWT_SECRET_KEY is not set - using the development secret")
	}
	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		log.Warn().Msg("ADMIN_EMAIL or ADMIN_PASSWORD_HASH not set - admin login will be rejected")
	}

	tokens := service.NewTokenService(service.TokenConfig{
		SecretKey:      cfg.JWTSecretKey,
		Issuer:         cfg.JWTIssuer,
		AccessTokenTTL: cfg.AccessTokenTTL,
	})
	return service.NewAuthService(service.AdminAccount{
		Email:        cfg.AdminEmail,
		PasswordHash: cfg.AdminPasswordHash,
	}, tokens)
}
