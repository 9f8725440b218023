package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/domain/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingSink keeps every entry it is given.
type recordingSink struct {
	mu      sync.Mutex
	entries []*model.LogEntry
}

func (s *recordingSink) Log(entry *model.LogEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return true
}

func (s *recordingSink) all() []*model.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.LogEntry(nil), s.entries...)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}
