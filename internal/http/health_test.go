package http

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/bundle-service/internal/circuitbreaker"
)

func TestHealthHandler_Liveness(t *testing.T) {
	router := gin.New()
	NewHealthHandler().Register(router)

	w := doRequest(router, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	openBreaker := func() *circuitbreaker.CircuitBreaker {
		cb := circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 1, Timeout: time.Minute, Name: "bundle_store"})
		_ = cb.Execute(context.Background(), func() error { return errors.New("down") })
		return cb
	}

	tests := []struct {
		name           string
		setupHandler   func() *HealthHandler
		expectedStatus int
		expectedChecks map[string]interface{}
	}{
		{
			name:           "no dependencies",
			setupHandler:   NewHealthHandler,
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]interface{}{"service": "ok"},
		},
		{
			name: "healthy mongo and breaker",
			setupHandler: func() *HealthHandler {
				h := NewHealthHandler()
				h.RegisterChecker("mongodb", HealthCheckerFunc(func(context.Context) error { return nil }))
				h.RegisterCircuitBreaker("bundle_store", circuitbreaker.New(circuitbreaker.DefaultConfig()))
				return h
			},
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]interface{}{"mongodb": "ok"},
		},
		{
			name: "mongo unreachable",
			setupHandler: func() *HealthHandler {
				h := NewHealthHandler()
				h.RegisterChecker("mongodb", HealthCheckerFunc(func(context.Context) error {
					return errors.New("server selection timeout")
				}))
				return h
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedChecks: map[string]interface{}{"mongodb": "server selection timeout"},
		},
		{
			name: "open breaker",
			setupHandler: func() *HealthHandler {
				h := NewHealthHandler()
				h.RegisterCircuitBreaker("bundle_store", openBreaker())
				h.RegisterCircuitBreaker("ignored", nil)
				return h
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedChecks: map[string]interface{}{"service": "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			tt.setupHandler().Register(router)

			w := doRequest(router, http.MethodGet, "/readyz", "", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeJSON[struct {
				Status   string                 `json:"status"`
				Checks   map[string]interface{} `json:"checks"`
				Breakers []circuitbreaker.Stats `json:"circuit_breakers"`
			}](t, w)
			assert.Equal(t, tt.expectedChecks, body.Checks)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "ok", body.Status)
			} else {
				assert.Equal(t, "degraded", body.Status)
			}
			for _, b := range body.Breakers {
				require.NotEqual(t, "ignored", b.Name)
			}
		})
	}
}
