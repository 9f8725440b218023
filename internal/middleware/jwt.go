package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/i18n"
	"github.com/guttosm/bundle-service/internal/service"
)

// Context keys set by the auth middleware.
const (
	ClaimsKey ContextKey = "admin_claims"
	ActorKey  ContextKey = "actor"
)

const bearerPrefix = "Bearer "

// JWTAuth requires a valid "Authorization: Bearer <token>" header and stores
// the token's claims on the context.
func JWTAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(string(ClaimsKey), claims)
		c.Set(string(ActorKey), claims.Email)
		c.Next()
	}
}

// GetClaims returns the claims stored by JWTAuth.
func GetClaims(c *gin.Context) (*dto.Claims, bool) {
	v, ok := c.Get(string(ClaimsKey))
	if !ok {
		return nil, false
	}
	claims, ok := v.(*dto.Claims)
	return claims, ok && claims != nil
}

// GetActor names whoever authenticated the request, or "" for anonymous calls.
func GetActor(c *gin.Context) string {
	return c.GetString(string(ActorKey))
}

func abortUnauthorized(c *gin.Context, key string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(dto.ErrCodeUnauthorized, i18n.T(c, key)).WithRequestID(GetRequestID(c)))
}
