package http

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bundle-service/internal/circuitbreaker"
)

// readinessTimeout bounds every dependency check.
const readinessTimeout = 2 * time.Second

// HealthChecker checks a dependency.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthCheckerFunc adapts a function to HealthChecker.
type HealthCheckerFunc func(ctx context.Context) error

// Check calls f.
func (f HealthCheckerFunc) Check(ctx context.Context) error { return f(ctx) }

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	mu              sync.RWMutex
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// NewHealthHandler creates a HealthHandler with no dependencies.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// RegisterChecker adds a dependency check to the readiness probe.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// RegisterCircuitBreaker reports cb on the readiness probe. A breaker that is
// not closed makes the service not ready.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	if cb == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.circuitBreakers[name] = cb
}

// Register mounts /healthz and /readyz on router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK while the process is serving requests.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Checks MongoDB and reports the circuit breakers. Returns 503 while any of them is unhealthy.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]interface{}, len(h.checkers))
	for name, checker := range h.checkers {
		if err := checker.Check(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	breakers := make([]circuitbreaker.Stats, 0, len(h.circuitBreakers))
	for _, cb := range h.circuitBreakers {
		stats := cb.GetStats()
		if !stats.IsHealthy {
			status = http.StatusServiceUnavailable
		}
		breakers = append(breakers, stats)
	}
	sort.Slice(breakers, func(i, j int) bool { return breakers[i].Name < breakers[j].Name })

	c.JSON(status, gin.H{
		"status":           map[bool]string{true: "ok", false: "degraded"}[status == http.StatusOK],
		"checks":           checks,
		"circuit_breakers": breakers,
	})
}
