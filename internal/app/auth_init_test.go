//go:build !integration

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/bundle-service/internal/service"
)

func TestInitializeAuth_Disabled(t *testing.T) {
	assert.Nil(t, InitializeAuth(testConfig().Auth))
}

func TestInitializeAuth_Login(t *testing.T) {
	hash, err := service.HashPassword("s3cret")
	require.NoError(t, err)

	cfg := testConfig().Auth
	cfg.Enabled = true
	cfg.AdminEmail = "admin@example.com"
	cfg.AdminPasswordHash = hash

	auth := InitializeAuth(cfg)
	require.NotNil(t, auth)

	pair, claims, err := auth.Login(context.Background(), "Admin@Example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Contains(t, claims.Roles, service.RoleAdmin)

	validated, err := auth.ValidateToken(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", validated.Subject)

	_, _, err = auth.Login(context.Background(), "admin@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestInitializeAuth_NoAccount(t *testing.T) {
	cfg := testConfig().Auth
	cfg.Enabled = true

	auth := InitializeAuth(cfg)
	require.NotNil(t, auth)

	_, _, err := auth.Login(context.Background(), "admin@example.com", "x")
	assert.ErrorIs(t, err, service.ErrAuthNotConfigured)
}
