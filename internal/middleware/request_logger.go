package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/bundle-service/internal/domain/model"
)

// RequestLogger writes one zerolog line per request and, when sink is
// non-nil, persists the same fields as a request log entry.
func RequestLogger(sink LogSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		level := levelFor(status)

		log.WithLevel(level).
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status_code", status).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", c.ClientIP()).
			Str("actor", GetActor(c)).
			Msg("HTTP request")

		if sink == nil {
			return
		}
		sink.Log(&model.LogEntry{
			Timestamp:  start.UTC(),
			Level:      level.String(),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: status,
			Duration:   latency.Milliseconds(),
			IP:         c.ClientIP(),
			Actor:      GetActor(c),
		})
	}
}

func levelFor(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
