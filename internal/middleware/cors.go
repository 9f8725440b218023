package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// DefaultCORSOrigins are the local storefront and admin dev servers.
var DefaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// CORS allows the given origins to call the API with credentials.
func CORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = DefaultCORSOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization",
			APIKeyHeader, IdempotencyKeyHeader, RequestIDHeader,
		},
		ExposeHeaders:    []string{RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", IdempotencyReplayedHeader},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
