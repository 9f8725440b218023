package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/bundle-service/internal/domain/model"
)

// Audit records an admin action on a bundle. Failed actions carry err and
// are logged at error level. A nil sink only writes the zerolog line.
func Audit(sink LogSink, c *gin.Context, action, bundleSlug, message string, err error) {
	entry := &model.LogEntry{
		Timestamp:  time.Now().UTC(),
		Level:      "info",
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		Actor:      GetActor(c),
		ActionType: action,
		BundleSlug: bundleSlug,
	}
	if err != nil {
		entry.Level = "error"
		entry.Error = err.Error()
	}

	evt := log.Info()
	if err != nil {
		evt = log.Error().Err(err)
	}
	evt.Str("request_id", entry.RequestID).
		Str("actor", entry.Actor).
		Str("action_type", action).
		Str("bundle_slug", bundleSlug).
		Msg(message)

	if sink != nil {
		sink.Log(entry)
	}
}
