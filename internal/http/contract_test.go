//go:build contract

package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// TestAPI_ContractCompliance checks the response shapes storefront and admin
// clients depend on.
func TestAPI_ContractCompliance(t *testing.T) {
	router := newServiceRouter(t, testRouterConfig())
	require.Equal(t, http.StatusCreated,
		doRequest(router, http.MethodPost, "/api/admin/bundles", strengthStarter, nil).Code)

	tests := []struct {
		name             string
		method           string
		path             string
		body             string
		expectedStatus   int
		validateResponse func(*testing.T, gjson.Result)
	}{
		{
			name:           "GET /api/bundles is a plain array",
			method:         http.MethodGet,
			path:           "/api/bundles",
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, body gjson.Result) {
				require.True(t, body.IsArray())
				first := body.Get("0")
				for _, field := range []string{"id", "name", "description", "discountPercent", "fixedPrice", "imageUrl", "items"} {
					assert.True(t, first.Get(field).Exists(), "missing %s", field)
				}
				assert.Equal(t, gjson.Null, first.Get("fixedPrice").Type)
			},
		},
		{
			name:           "GET /api/bundles/views is enveloped",
			method:         http.MethodGet,
			path:           "/api/bundles/views",
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, body gjson.Result) {
				assert.NotEmpty(t, body.Get("request_id").String())
				assert.True(t, body.Get("timestamp").Exists())
				view := body.Get("data.0")
				for _, field := range []string{"resolvedItems", "totalUnitPrice", "effectivePrice", "savings", "unresolvedCount"} {
					assert.True(t, view.Get(field).Exists(), "missing %s", field)
				}
			},
		},
		{
			name:           "GET /api/products is a plain array",
			method:         http.MethodGet,
			path:           "/api/products",
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, body gjson.Result) {
				require.True(t, body.IsArray())
				assert.Equal(t, int64(1), body.Get("0.id").Int(), "numeric ids stay numbers")
			},
		},
		{
			name:           "errors use the error envelope",
			method:         http.MethodPost,
			path:           "/api/admin/bundles",
			body:           `{"name":"Broken","discountPercent":-1,"items":[]}`,
			expectedStatus: http.StatusBadRequest,
			validateResponse: func(t *testing.T, body gjson.Result) {
				assert.Equal(t, "invalid_request", body.Get("error").String())
				assert.NotEmpty(t, body.Get("message").String())
				assert.NotEmpty(t, body.Get("request_id").String())
				assert.True(t, body.Get("details").IsObject())
			},
		},
		{
			name:           "delete returns a message",
			method:         http.MethodDelete,
			path:           "/api/admin/bundles/strength-starter",
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, body gjson.Result) {
				assert.Equal(t, "Bundle deleted", body.Get("message").String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.path, tt.body, nil)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			require.True(t, gjson.ValidBytes(w.Body.Bytes()))
			tt.validateResponse(t, gjson.ParseBytes(w.Body.Bytes()))
		})
	}
}
