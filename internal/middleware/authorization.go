package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/i18n"
)

// RequireRole lets the request through when the JWT claims hold any of roles.
// It must run after JWTAuth; a request without claims is rejected with 401.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			abortUnauthorized(c, i18n.ErrKeyUnauthorized)
			return
		}

		for _, role := range roles {
			if claims.HasRole(role) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewError(dto.ErrCodeForbidden, i18n.T(c, i18n.ErrKeyForbidden)).WithRequestID(GetRequestID(c)))
	}
}
