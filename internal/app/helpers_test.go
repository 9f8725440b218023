package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bundle-service/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testConfig is an in-memory configuration with rate limiting disabled.
func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			RequestTimeout: 5 * time.Second,
			IdempotencyTTL: time.Minute,
		},
		Cache: config.CacheConfig{Size: 64, TTL: time.Minute, Shards: 4},
		Auth: config.AuthConfig{
			JWTSecretKey:   "test-secret",
			JWTIssuer:      "bundle-service-test",
			AccessTokenTTL: time.Hour,
		},
		Catalog: config.CatalogConfig{
			Timeout:                        time.Second,
			CacheTTL:                       time.Minute,
			CircuitBreakerFailureThreshold: 2,
			CircuitBreakerTimeout:          time.Minute,
		},
		Log: config.LogConfig{Level: "error"},
	}
}

func serve(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func catalogServer(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

const catalogBody = `[
	{"id": 1, "name": "Whey Isolate", "category": "Protein", "price": 60},
	{"id": 2, "name": "Creatine", "category": "Strength", "price": 40}
]`

const strengthStarter = `{
	"name": "Strength Starter",
	"discountPercent": 10,
	"items": [{"keyword": "whey"}, {"keyword": "creatine"}]
}`
