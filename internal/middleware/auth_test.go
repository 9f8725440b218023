package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAPIKeyAuth(t *testing.T) {
	keys := map[string]bool{"key-1": true, "key-2": true, "revoked": false}

	tests := []struct {
		name            string
		keys            map[string]bool
		header          string
		query           string
		expectedStatus  int
		expectedActor   string
		expectedMessage string
	}{
		{name: "disabled without keys", keys: nil, expectedStatus: http.StatusOK},
		{name: "header", keys: keys, header: "key-2", expectedStatus: http.StatusOK, expectedActor: APIKeyActor},
		{name: "query fallback", keys: keys, query: "key-1", expectedStatus: http.StatusOK, expectedActor: APIKeyActor},
		{name: "missing", keys: keys, expectedStatus: http.StatusUnauthorized, expectedMessage: "API key is required"},
		{name: "unknown", keys: keys, header: "nope", expectedStatus: http.StatusUnauthorized, expectedMessage: "Invalid API key"},
		{name: "disabled key", keys: keys, header: "revoked", expectedStatus: http.StatusUnauthorized, expectedMessage: "Invalid API key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(APIKeyAuth(tt.keys))
			router.GET("/admin", func(c *gin.Context) {
				c.String(http.StatusOK, GetActor(c))
			})

			target := "/admin"
			if tt.query != "" {
				target += "?" + APIKeyQuery + "=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedActor, w.Body.String())
				return
			}
			assert.Equal(t, tt.expectedMessage, decodeError(t, w).Message)
		})
	}
}
