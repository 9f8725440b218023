package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bundle-service/internal/i18n"
)

const (
	// APIKeyHeader carries the admin API key.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query fallback for the API key.
	APIKeyQuery = "api_key"
	// APIKeyActor is the audit actor for API-key requests.
	APIKeyActor = "api-key"
)

// APIKeyAuth checks X-API-Key, then the api_key query parameter, against
// validKeys. An empty key set disables the check.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}
		if key == "" {
			abortUnauthorized(c, i18n.ErrKeyAPIKeyRequired)
			return
		}
		if !matchesAny(key, validKeys) {
			abortUnauthorized(c, i18n.ErrKeyInvalidAPIKey)
			return
		}

		c.Set(string(ActorKey), APIKeyActor)
		c.Next()
	}
}

// matchesAny compares against every key in constant time.
func matchesAny(key string, validKeys map[string]bool) bool {
	found := 0
	for valid, enabled := range validKeys {
		if enabled {
			found |= subtle.ConstantTimeCompare([]byte(key), []byte(valid))
		}
	}
	return found == 1
}
