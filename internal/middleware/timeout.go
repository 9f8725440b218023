package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/i18n"
)

// DefaultRequestTimeout applies when Timeout is given a non-positive duration.
const DefaultRequestTimeout = 30 * time.Second

// Timeout puts a deadline on the request context. Handlers run on the request
// goroutine and stop when their repository or catalog call observes the
// deadline; a 504 is written if they did not respond by then.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusGatewayTimeout,
				dto.NewError(dto.ErrCodeTimeout, i18n.T(c, i18n.ErrKeyTimeout)).
					WithRequestID(GetRequestID(c)))
		}
	}
}
