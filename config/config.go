// Package config loads the bundle service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Client   ClientConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	IdempotencyTTL time.Duration
}

// CacheConfig sizes the bundle view cache.
type CacheConfig struct {
	Size   int
	TTL    time.Duration
	Shards int
}

// AuthConfig holds admin authentication configuration.
// When Enabled is false admin routes fall back to API keys, and are open when
// no key is configured.
type AuthConfig struct {
	Enabled           bool
	APIKeys           map[string]bool
	JWTSecretKey      string
	JWTIssuer         string
	AccessTokenTTL    time.Duration
	AdminEmail        string
	AdminPasswordHash string
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// CatalogConfig points at the upstream product catalog.
// An empty URL serves an empty catalog.
type CatalogConfig struct {
	URL      string
	Timeout  time.Duration
	CacheTTL time.Duration

	CircuitBreakerFailureThreshold int
	CircuitBreakerTimeout          time.Duration
}

// ClientConfig configures bundlectl.
type ClientConfig struct {
	BaseURL string
	Token   string
}

// LogConfig holds zerolog configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
			IdempotencyTTL: getEnvDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		},
		Cache: CacheConfig{
			Size:   getEnvInt("VIEW_CACHE_SIZE", 256),
			TTL:    getEnvDuration("VIEW_CACHE_TTL", 5*time.Minute),
			Shards: getEnvInt("VIEW_CACHE_SHARDS", 16),
		},
		Auth: AuthConfig{
			Enabled:           getEnvBool("AUTH_ENABLED", false),
			APIKeys:           parseAPIKeys(os.Getenv("API_KEYS")),
			JWTSecretKey:      getEnv("JWT_SECRET_KEY", "change-me-in-production"),
			JWTIssuer:         getEnv("JWT_ISSUER", "bundle-service"),
			AccessTokenTTL:    getEnvDuration("JWT_ACCESS_TOKEN_TTL", time.Hour),
			AdminEmail:        strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", ""))),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "bundle_service"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Catalog: CatalogConfig{
			URL:                            getEnv("CATALOG_URL", ""),
			Timeout:                        getEnvDuration("CATALOG_TIMEOUT", 10*time.Second),
			CacheTTL:                       getEnvDuration("CATALOG_CACHE_TTL", time.Minute),
			CircuitBreakerFailureThreshold: getEnvInt("CATALOG_BREAKER_FAILURE_THRESHOLD", 3),
			CircuitBreakerTimeout:          getEnvDuration("CATALOG_BREAKER_TIMEOUT", 30*time.Second),
		},
		Client: ClientConfig{
			BaseURL: getEnv("BUNDLE_API_URL", "http://localhost:8080"),
			Token:   getEnv("BUNDLE_API_TOKEN", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseAPIKeys(s string) map[string]bool {
	keys := splitList(s)
	if len(keys) == 0 {
		return nil
	}
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		result[k] = true
	}
	return result
}

// parseCORSOrigins always allows the local storefront dev servers.
func parseCORSOrigins(s string) []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
	return append(origins, splitList(s)...)
}
