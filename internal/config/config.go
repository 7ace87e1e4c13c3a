// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Source   SourceConfig
	Server   ServerConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// SourceConfig holds the locations a dataset is resolved from.
//
// Resolution order is fixed: local data directory, then the bundled assets,
// then the remote asset bucket when one is configured.
type SourceConfig struct {
	// DataDir is the base directory for locally provisioned datasets (default: .)
	DataDir string `env:"DATA_DIR" default:"."`

	// DataOffset is the path below DataDir that holds the CSV files (default: data)
	DataOffset string `env:"DATA_OFFSET" default:"data"`

	// AssetDir is the root of the CSV files inside the bundled asset tree (default: data)
	AssetDir string `env:"ASSET_DIR" default:"data"`

	// CacheDir is where bundled and remote assets are materialized before reading.
	// Empty means bundled assets are read in place.
	CacheDir string `env:"ASSET_CACHE_DIR"`

	// S3Bucket enables the remote asset tier when set
	S3Bucket string `env:"ASSET_S3_BUCKET" envAlt:"S3_BUCKET"`

	// S3Prefix is prepended to the filename to build the object key
	S3Prefix string `env:"ASSET_S3_PREFIX"`

	// MaxBytes is the largest dataset any source will return (default: 50MB)
	MaxBytes int64 `env:"SOURCE_MAX_BYTES" default:"52428800"`
}

// RemoteEnabled reports whether the S3 tier should be wired into the chain.
func (c *SourceConfig) RemoteEnabled() bool {
	return c.S3Bucket != ""
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout bounds a single dataset load, including every source attempt (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// MaxConcurrentLoads caps dataset loads in flight across all requests (default: 8)
	MaxConcurrentLoads int `env:"SERVER_MAX_CONCURRENT_LOADS" default:"8"`

	// LoadWait is how long a request waits for a load slot before 503 (default: 10s)
	LoadWait time.Duration `env:"SERVER_LOAD_WAIT" default:"10s"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// RequireAPIKey rejects API requests without a valid X-API-Key header (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS"`

	// RateLimit is the number of requests per minute allowed per client IP.
	// Zero disables rate limiting (default: 100)
	RateLimit int `env:"RATE_LIMIT" default:"100"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
