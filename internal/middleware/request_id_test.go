package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name        string
		headerValue string
		validate    func(*testing.T, string)
	}{
		{
			name: "generates a uuid",
			validate: func(t *testing.T, id string) {
				_, err := uuid.Parse(id)
				assert.NoError(t, err)
			},
		},
		{
			name:        "reuses the client id",
			headerValue: "custom-request-id-123",
			validate: func(t *testing.T, id string) {
				assert.Equal(t, "custom-request-id-123", id)
			},
		},
		{
			name:        "replaces an oversized id",
			headerValue: strings.Repeat("a", maxRequestIDLen+1),
			validate: func(t *testing.T, id string) {
				_, err := uuid.Parse(id)
				assert.NoError(t, err)
			},
		},
		{
			name:        "replaces a non-ascii id",
			headerValue: "café",
			validate: func(t *testing.T, id string) {
				assert.NotEqual(t, "café", id)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID())
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, GetRequestID(c))
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.headerValue != "" {
				req.Header.Set(RequestIDHeader, tt.headerValue)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
			tt.validate(t, w.Body.String())
		})
	}
}

func TestRequestID_ContextLogger(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())

	var got *zerolog.Logger
	router.GET("/test", func(c *gin.Context) {
		got = zerolog.Ctx(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotNil(t, got)
	assert.NotEqual(t, zerolog.Disabled, got.GetLevel())
}

func TestGetRequestID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))

	c.Set(string(RequestIDKey), 42)
	assert.Empty(t, GetRequestID(c))
}
