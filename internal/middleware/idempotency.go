package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/i18n"
	"github.com/guttosm/bundle-service/internal/service/cache"
)

const (
	// IdempotencyKeyHeader is the client-chosen key for a write.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long a response is replayed.
	IdempotencyKeyTTL = 5 * time.Minute
	// IdempotencyCacheName labels the cache metrics.
	IdempotencyCacheName = "idempotency"

	defaultIdempotencyCapacity = 1024
	maxIdempotentBody          = 1 << 20
)

// storedResponse is a replayable 2xx response and the body hash that produced it.
type storedResponse struct {
	bodyHash    string
	status      int
	contentType string
	body        []byte
}

// IdempotencyStore holds recorded responses keyed by idempotency key, method and path.
type IdempotencyStore = cache.Cache[string, *storedResponse]

// NewIdempotencyStore creates an in-memory store that keeps responses for ttl.
func NewIdempotencyStore(ttl time.Duration) *cache.TTL[string, *storedResponse] {
	return cache.NewTTL[string, *storedResponse](IdempotencyCacheName, defaultIdempotencyCapacity, ttl)
}

// Idempotency replays the recorded response when a POST or PUT repeats an
// Idempotency-Key with the same body. Reusing a key with a different body is
// rejected with 422. Requests without the header pass through.
func Idempotency(store IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || (c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut) {
			c.Next()
			return
		}
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxIdempotentBody))
		if err != nil {
			_ = c.Error(err).SetType(gin.ErrorTypeBind)
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		storeKey := key + " " + c.Request.Method + " " + c.Request.URL.Path
		bodyHash := hashBody(body)

		if prev, ok := store.Get(storeKey); ok {
			if prev.bodyHash != bodyHash {
				c.AbortWithStatusJSON(http.StatusUnprocessableEntity,
					dto.NewError(dto.ErrCodeUnprocessable, i18n.T(c, i18n.ErrKeyIdempotencyReused)).
						WithRequestID(GetRequestID(c)))
				return
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(prev.status, prev.contentType, prev.body)
			c.Abort()
			return
		}

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		if status := rec.Status(); status >= 200 && status < 300 {
			store.Set(storeKey, &storedResponse{
				bodyHash:    bodyHash,
				status:      status,
				contentType: rec.Header().Get("Content-Type"),
				body:        rec.buf.Bytes(),
			})
		}
	}
}

func hashBody(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// recordingWriter tees the response body.
type recordingWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
