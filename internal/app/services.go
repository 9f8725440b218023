package app

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/bundle-service/config"
	"github.com/guttosm/bundle-service/internal/catalog"
	"github.com/guttosm/bundle-service/internal/circuitbreaker"
	"github.com/guttosm/bundle-service/internal/domain/model"
	"github.com/guttosm/bundle-service/internal/repository"
	"github.com/guttosm/bundle-service/internal/service"
	"github.com/guttosm/bundle-service/internal/service/cache"
)

// ServiceComponents holds the business services.
type ServiceComponents struct {
	Bundles service.BundleService
	Deriver *service.ViewDeriver
	// Catalog is nil when no upstream is configured.
	Catalog *catalog.Client
	// CatalogCircuitBreaker guards the upstream. Readiness does not track it
	// because views fall back to an empty catalog.
	CatalogCircuitBreaker *circuitbreaker.CircuitBreaker
}

// Stop releases cache sweepers.
func (s *ServiceComponents) Stop() {
	if s == nil {
		return
	}
	s.Deriver.Stop()
	if s.Catalog != nil {
		s.Catalog.Stop()
	}
}

// InitializeServices creates the product source, the view deriver and the bundle service.
func InitializeServices(cfg config.Config, bundles repository.BundleRepositoryInterface) *ServiceComponents {
	components := &ServiceComponents{Deriver: newViewDeriver(cfg.Cache)}

	var products service.ProductSource = catalog.Static{}
	if cfg.Catalog.URL == "" {
		log.Warn().Msg("CATALOG_URL not set - serving an empty product catalog")
	} else {
		components.CatalogCircuitBreaker = circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: cfg.Catalog.CircuitBreakerFailureThreshold,
			SuccessThreshold: 1,
			Timeout:          cfg.Catalog.CircuitBreakerTimeout,
			Name:             "catalog",
		})
		opts := []catalog.Option{
			catalog.WithHTTPClient(&http.Client{Timeout: cfg.Catalog.Timeout}),
			catalog.WithCircuitBreaker(components.CatalogCircuitBreaker),
		}
		if cfg.Catalog.CacheTTL > 0 {
			opts = append(opts, catalog.WithCache(
				cache.NewTTL[string, []model.Product](catalog.CacheName, 1, cfg.Catalog.CacheTTL),
			))
		}
		components.Catalog = catalog.NewClient(cfg.Catalog.URL, opts...)
		products = components.Catalog
		log.Info().Str("url", cfg.Catalog.URL).Msg("Product catalog configured")
	}

	components.Bundles = service.NewBundleService(bundles, products, components.Deriver)
	return components
}

// newViewDeriver memoizes views unless the cache size is zero.
func newViewDeriver(cfg config.CacheConfig) *service.ViewDeriver {
	if cfg.Size <= 0 {
		return service.NewViewDeriver()
	}
	return service.NewViewDeriver(service.WithViewCache(
		cache.NewSharded[[]model.BundleView](service.ViewCacheName, cfg.Size, cfg.TTL, cfg.Shards),
	))
}
