package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name          string
		origins       []string
		origin        string
		method        string
		expectedAllow string
		expectedCode  int
	}{
		{name: "default storefront origin", origin: "http://localhost:3000", method: http.MethodGet, expectedAllow: "http://localhost:3000", expectedCode: http.StatusOK},
		{name: "default admin origin", origin: "http://localhost:5173", method: http.MethodGet, expectedAllow: "http://localhost:5173", expectedCode: http.StatusOK},
		{name: "configured origin", origins: []string{"https://shop.example.com"}, origin: "https://shop.example.com", method: http.MethodGet, expectedAllow: "https://shop.example.com", expectedCode: http.StatusOK},
		{name: "foreign origin", origin: "https://evil.example.com", method: http.MethodGet, expectedCode: http.StatusForbidden},
		{name: "preflight", origin: "http://localhost:3000", method: http.MethodOptions, expectedAllow: "http://localhost:3000", expectedCode: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(tt.origins))
			router.GET("/api/bundles", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(tt.method, "/api/bundles", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedAllow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
