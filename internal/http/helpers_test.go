package http

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testRouterConfig disables rate limiting so tables can send many requests.
func testRouterConfig() RouterConfig {
	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	return cfg
}

func newMockRouter(t *testing.T, cfg RouterConfig) (*gin.Engine, *mocks.MockBundleService) {
	t.Helper()
	bundles := new(mocks.MockBundleService)
	t.Cleanup(func() { bundles.AssertExpectations(t) })
	return NewRouter(NewHandler(bundles, cfg.LogSink), NewHealthHandler(), cfg), bundles
}

func doRequest(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// envelope mirrors dto.SuccessResponse with a typed payload.
type envelope[T any] struct {
	Data      T      `json:"data"`
	RequestID string `json:"request_id"`
}

func decodeEnvelope[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	return decodeJSON[envelope[T]](t, w)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	return decodeJSON[dto.ErrorResponse](t, w)
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
