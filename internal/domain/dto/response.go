package dto

import (
	"net/http"
	"time"
)

// Machine-readable error codes carried in ErrorResponse.Error.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeForbidden      = "forbidden"
	ErrCodeNotFound       = "not_found"
	ErrCodeConflict       = "conflict"
	ErrCodeUnprocessable  = "unprocessable"
	ErrCodeRateLimit      = "rate_limit_exceeded"
	ErrCodeTimeout        = "timeout"
	ErrCodeUnavailable    = "service_unavailable"
	ErrCodeInternal       = "internal_error"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:          ErrCodeInvalidRequest,
	http.StatusUnauthorized:        ErrCodeUnauthorized,
	http.StatusForbidden:           ErrCodeForbidden,
	http.StatusNotFound:            ErrCodeNotFound,
	http.StatusRequestTimeout:      ErrCodeTimeout,
	http.StatusConflict:            ErrCodeConflict,
	http.StatusUnprocessableEntity: ErrCodeUnprocessable,
	http.StatusTooManyRequests:     ErrCodeRateLimit,
	http.StatusServiceUnavailable:  ErrCodeUnavailable,
	http.StatusGatewayTimeout:      ErrCodeTimeout,
}

// SuccessResponse is the envelope around every 2xx JSON body.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      interface{} `json:"data" swaggertype:"object"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the envelope around every error body. Details maps a
// form field to its validation message.
// @Description Standardized error response
type ErrorResponse struct {
	Error     string            `json:"error" example:"invalid_request"`
	Message   string            `json:"message,omitempty" example:"Name is required"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewSuccess wraps data in the success envelope.
func NewSuccess(data interface{}, requestID string) SuccessResponse {
	return SuccessResponse{Data: data, RequestID: requestID, Timestamp: time.Now()}
}

// NewError builds an error envelope stamped with the current time.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: code, Message: message, Timestamp: time.Now()}
}

// WithDetails returns a copy carrying per-field messages.
func (e ErrorResponse) WithDetails(details map[string]string) ErrorResponse {
	e.Details = details
	return e
}

// WithRequestID returns a copy tagged with requestID.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus maps an HTTP status to its error code. Unlisted
// statuses map to ErrCodeInternal.
func ErrCodeFromStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return ErrCodeInternal
}
