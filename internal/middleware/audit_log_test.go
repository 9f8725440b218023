package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/bundle-service/internal/domain/model"
)

func TestAudit(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedLevel string
		expectedError string
	}{
		{name: "success", expectedLevel: "info"},
		{name: "failure", err: errors.New("Bundle not found"), expectedLevel: "error", expectedError: "Bundle not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			router := gin.New()
			router.Use(RequestID())
			router.DELETE("/api/admin/bundles/:slug", func(c *gin.Context) {
				c.Set(string(ActorKey), "admin@example.com")
				Audit(sink, c, model.ActionDeleteBundle, c.Param("slug"), "Bundle deleted", tt.err)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/bundles/lean-pack", nil))

			entries := sink.all()
			require.Len(t, entries, 1)
			e := entries[0]
			assert.Equal(t, model.ActionDeleteBundle, e.ActionType)
			assert.Equal(t, "lean-pack", e.BundleSlug)
			assert.Equal(t, "admin@example.com", e.Actor)
			assert.Equal(t, "Bundle deleted", e.Message)
			assert.Equal(t, tt.expectedLevel, e.Level)
			assert.Equal(t, tt.expectedError, e.Error)
			assert.Equal(t, http.MethodDelete, e.Method)
			assert.Equal(t, w.Header().Get(RequestIDHeader), e.RequestID)
			assert.False(t, e.Timestamp.IsZero())
		})
	}
}

func TestAudit_NilSink(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

	assert.NotPanics(t, func() {
		Audit(nil, c, model.ActionLogin, "", "Admin logged in", nil)
	})
}
