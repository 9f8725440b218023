//go:build integration

package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/bundle-service/internal/circuitbreaker"
	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/domain/model"
	"github.com/guttosm/bundle-service/internal/middleware"
	"github.com/guttosm/bundle-service/internal/repository"
	"github.com/guttosm/bundle-service/internal/service"
)

func TestIntegration_BundleLifecycleOnMongo(t *testing.T) {
	db := openMongo(t)

	breaker := circuitbreaker.New(circuitbreaker.Config{
		Name:             "bundle_store_it",
		FailureThreshold: 3,
		SuccessThreshold: 1,
		Timeout:          time.Second,
		IsFailure:        repository.IsStorageFailure,
	})
	repo := repository.NewBundleRepositoryWithCircuitBreaker(repository.NewBundleRepository(db), breaker)
	logs := service.NewLoggingService(repository.NewLogsRepository(db))
	sink := middleware.NewAsyncLogger(logs, middleware.AsyncLoggerConfig{BufferSize: 64, NumWorkers: 1})

	cfg := testRouterConfig()
	cfg.LogSink = sink
	cfg.LoggingService = logs
	health := NewHealthHandler()
	health.RegisterChecker("mongodb", HealthCheckerFunc(db.HealthCheck))
	health.RegisterCircuitBreaker("bundle_store", breaker)
	router := NewRouter(NewHandler(service.NewBundleService(repo, testProducts, nil), sink), health, cfg)

	w := doRequest(router, http.MethodPost, "/api/admin/bundles", strengthStarter, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(router, http.MethodPut, "/api/admin/bundles/strength-starter", `{"description":"Stored in Mongo","fixedPrice":"80"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(router, http.MethodGet, "/api/bundles/strength-starter", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stored := decodeJSON[model.Bundle](t, w)
	assert.Equal(t, "Stored in Mongo", stored.Description)
	require.NotNil(t, stored.FixedPrice)
	assert.Equal(t, 80.0, *stored.FixedPrice)

	w = doRequest(router, http.MethodGet, "/api/bundles/views", "", nil)
	views := decodeEnvelope[[]model.BundleView](t, w).Data
	require.Len(t, views, 1)
	assert.Equal(t, 20.0, views[0].Savings)

	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/readyz", "", nil).Code)

	w = doRequest(router, http.MethodDelete, "/api/admin/bundles/strength-starter", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	sink.Stop()

	w = doRequest(router, http.MethodGet, "/api/admin/audit-logs?bundle=strength-starter", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decodeEnvelope[dto.AuditLogPage](t, w).Data
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Entries, 3)
	assert.Equal(t, model.ActionDeleteBundle, page.Entries[0].ActionType)
}
