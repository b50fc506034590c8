package config

import (
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// DefaultBackendURL is used when BACKEND_URL is not set
const DefaultBackendURL = "https://d1ye5bx9w8mu3e.cloudfront.net"

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Document backend
	BackendURL             string
	BackendTimeout         time.Duration
	HealthTimeout          time.Duration
	BackendMaxConns        int
	BackendMaxConnsPerHost int
	RetryAttempts          int           // 1 = single attempt, no retry
	RetryBackoff           time.Duration // linear backoff between attempts
	RateLimit              float64       // requests per second, 0 disables throttling
	RateBurst              int
	// Tools
	SearchConcurrency int
	DefaultRoom       string // room used when no execution context carries one
	// Logging
	LogDir      string
	LogMaxFiles int
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		// Document backend
		BackendURL:             getEnv("BACKEND_URL", DefaultBackendURL),
		BackendTimeout:         getDuration("BACKEND_TIMEOUT", 30*time.Second),
		HealthTimeout:          getDuration("HEALTH_TIMEOUT", 10*time.Second),
		BackendMaxConns:        getInt("BACKEND_MAX_CONNS", 10),
		BackendMaxConnsPerHost: getInt("BACKEND_MAX_CONNS_PER_HOST", 5),
		RetryAttempts:          getInt("BACKEND_RETRY_ATTEMPTS", 1),
		RetryBackoff:           getDuration("BACKEND_RETRY_BACKOFF", 500*time.Millisecond),
		RateLimit:              getFloat("BACKEND_RATE_LIMIT", 0),
		RateBurst:              getInt("BACKEND_RATE_BURST", 5),
		// Tools
		SearchConcurrency: getInt("SEARCH_CONCURRENCY", 10),
		DefaultRoom:       getEnv("DEFAULT_ROOM", ""),
		// Logging
		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getInt("LOG_MAX_FILES", 10),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// Validate checks that the configuration can be used to reach the backend.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.Environment, validation.In("dev", "test", "prod")),
		validation.Field(&c.BackendURL, validation.Required, is.URL),
		validation.Field(&c.BackendTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.HealthTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.BackendMaxConns, validation.Required, validation.Min(1)),
		validation.Field(&c.BackendMaxConnsPerHost, validation.Required, validation.Min(1)),
		validation.Field(&c.RetryAttempts, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&c.RateLimit, validation.Min(0.0)),
		validation.Field(&c.SearchConcurrency, validation.Required, validation.Min(1), validation.Max(50)),
		validation.Field(&c.LogMaxFiles, validation.Min(1)),
	)
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}
