package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/middleware"
)

var successResponsePool = sync.Pool{
	New: func() interface{} {
		return &dto.SuccessResponse{}
	},
}

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	resp.Data = nil
	resp.RequestID = ""
	resp.Timestamp = time.Time{}
	successResponsePool.Put(resp)
}

// Validator is implemented by request bodies that check themselves.
type Validator interface {
	Validate() error
}

// BuildRequest decodes the JSON body into a T. Decoding errors are attached
// to c as bind errors, so callers only need to return.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, c.Error(err).SetType(gin.ErrorTypeBind)
	}
	return &req, nil
}

// BuildRequestAndValidate is BuildRequest followed by Validate when T
// implements Validator. Validation errors are attached to c as well.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	req, err := BuildRequest[T](c)
	if err != nil {
		return nil, err
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			_ = c.Error(err)
			return nil, err
		}
	}
	return req, nil
}

// ResponseBuilder writes the success envelope. Error responses are rendered
// by middleware.ErrorHandler from c.Error.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a response builder for c.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success writes data inside the success envelope with statusCode.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := getSuccessResponse()
	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// gin serializes synchronously, so the response can go back to the pool.
	b.c.JSON(statusCode, resp)
	putSuccessResponse(resp)
}

// SuccessOK sends a 200 envelope.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 envelope.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}
