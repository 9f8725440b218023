//go:build !integration

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/bundle-service/config"
	"github.com/guttosm/bundle-service/internal/repository"
)

func TestInitializeServices(t *testing.T) {
	srv := catalogServer(catalogBody)
	defer srv.Close()

	tests := []struct {
		name        string
		mutate      func(*config.Config)
		wantCatalog bool
		wantLen     int
	}{
		{name: "no catalog url serves empty catalog", mutate: func(*config.Config) {}},
		{
			name:        "upstream catalog",
			mutate:      func(c *config.Config) { c.Catalog.URL = srv.URL },
			wantCatalog: true,
			wantLen:     2,
		},
		{
			name: "upstream catalog without snapshot cache",
			mutate: func(c *config.Config) {
				c.Catalog.URL = srv.URL
				c.Catalog.CacheTTL = 0
			},
			wantCatalog: true,
			wantLen:     2,
		},
		{name: "view cache disabled", mutate: func(c *config.Config) { c.Cache.Size = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			components := InitializeServices(cfg, repository.NewMemoryBundleRepository())
			defer components.Stop()

			require.NotNil(t, components.Bundles)
			require.NotNil(t, components.Deriver)
			assert.Equal(t, tt.wantCatalog, components.Catalog != nil)
			assert.Equal(t, tt.wantCatalog, components.CatalogCircuitBreaker != nil)

			products, err := components.Bundles.Products(context.Background())
			require.NoError(t, err)
			assert.Len(t, products, tt.wantLen)
		})
	}
}

func TestInitializeServices_UnreachableCatalogFallsBackForViews(t *testing.T) {
	srv := catalogServer(catalogBody)
	srv.Close()

	cfg := testConfig()
	cfg.Catalog.URL = srv.URL

	components := InitializeServices(cfg, repository.NewMemoryBundleRepository())
	defer components.Stop()

	_, err := components.Bundles.Products(context.Background())
	assert.Error(t, err)

	views, err := components.Bundles.Views(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestServiceComponents_StopNil(t *testing.T) {
	var components *ServiceComponents
	assert.NotPanics(t, components.Stop)
}
