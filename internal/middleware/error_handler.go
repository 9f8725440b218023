package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/bundle-service/internal/circuitbreaker"
	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/i18n"
	"github.com/guttosm/bundle-service/internal/service"
)

// errorMapping turns a domain error into a status and message key.
type errorMapping struct {
	target error
	status int
	key    string
}

// errorMappings are checked in order with errors.Is.
var errorMappings = []errorMapping{
	{service.ErrSlugRequired, http.StatusBadRequest, i18n.ErrKeyBundleSlugRequired},
	{service.ErrBundleNotFound, http.StatusNotFound, i18n.ErrKeyBundleNotFound},
	{service.ErrBundleExists, http.StatusConflict, i18n.ErrKeyBundleExists},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials},
	{service.ErrAuthNotConfigured, http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials},
	{service.ErrInvalidToken, http.StatusUnauthorized, i18n.ErrKeyInvalidToken},
	{service.ErrCatalogUnavailable, http.StatusServiceUnavailable, i18n.ErrKeyCatalogUnavailable},
	{circuitbreaker.ErrCircuitOpen, http.StatusServiceUnavailable, i18n.ErrKeyStorageUnavailable},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, i18n.ErrKeyTimeout},
}

// ErrorHandler renders the last error a handler attached with c.Error.
// Field validation errors become a 400 with per-field details; unmapped errors
// become a 500. Nothing is written when the handler already responded.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		last := c.Errors.Last()
		status, resp := ErrorResponse(c, last.Err)
		if last.IsType(gin.ErrorTypeBind) {
			status = http.StatusBadRequest
			resp = dto.NewError(dto.ErrCodeInvalidRequest, i18n.T(c, i18n.ErrKeyInvalidRequestBody)).
				WithRequestID(GetRequestID(c))
		}

		evt := log.Warn()
		if status >= http.StatusInternalServerError {
			evt = log.Error()
		}
		evt.Err(last.Err).
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status_code", status).
			Msg("Request error")

		c.AbortWithStatusJSON(status, resp)
	}
}

// ErrorResponse maps err to its status and translated envelope.
func ErrorResponse(c *gin.Context, err error) (int, dto.ErrorResponse) {
	requestID := GetRequestID(c)

	var fieldErrs dto.FieldErrors
	if errors.As(err, &fieldErrs) {
		return http.StatusBadRequest,
			dto.NewError(dto.ErrCodeInvalidRequest, i18n.T(c, i18n.ErrKeyValidationFailed)).
				WithDetails(fieldErrs).
				WithRequestID(requestID)
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, dto.NewError(dto.ErrCodeFromStatus(m.status), i18n.T(c, m.key)).WithRequestID(requestID)
		}
	}

	return http.StatusInternalServerError,
		dto.NewError(dto.ErrCodeInternal, i18n.T(c, i18n.ErrKeyInternalError)).WithRequestID(requestID)
}
