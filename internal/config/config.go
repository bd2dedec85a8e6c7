// Package config loads process configuration from the environment, with an
// optional .env file for local development. Components never read the
// environment themselves; everything they need arrives through explicit
// config structs built from this one.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the jobscout server configuration.
type Config struct {
	AuthToken   string // bearer token required on the MCP endpoint
	OwnerNumber string // returned by the validate tool

	Transport  string // "http" (default) or "stdio"
	ListenAddr string // MCP endpoint, default ":8086"
	OpsPort    int    // metrics/report endpoint, default 9091

	Identity       string        // outbound User-Agent
	Timeout        time.Duration // outbound request timeout, default 30s
	MaxRedirects   int           // default 10
	Fingerprint    string        // TLS fingerprint profile, default "go"
	ResultCap      int           // search result cap, default 5
	SearchEndpoint string        // default DuckDuckGo HTML endpoint

	StorageBackend string // "ndjson", "sqlite", "postgres" or "" (disabled)
	StorageDSN     string // file path or connection string

	RateLimitRPS    float64 // outbound fetch pacing, 0 = unlimited
	RateLimitJitter float64
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present. AUTH_TOKEN and MY_NUMBER are required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AuthToken:   os.Getenv("AUTH_TOKEN"),
		OwnerNumber: os.Getenv("MY_NUMBER"),

		Transport:  os.Getenv("MCP_TRANSPORT"),
		ListenAddr: os.Getenv("LISTEN_ADDR"),
		OpsPort:    envInt("OPS_PORT", 9091),

		Identity:       os.Getenv("IDENTITY"),
		Timeout:        envDuration("FETCH_TIMEOUT", 30*time.Second),
		MaxRedirects:   envInt("MAX_REDIRECTS", 10),
		Fingerprint:    os.Getenv("FINGERPRINT"),
		ResultCap:      envInt("RESULT_CAP", 5),
		SearchEndpoint: os.Getenv("SEARCH_ENDPOINT"),

		StorageBackend: os.Getenv("STORAGE_BACKEND"),
		StorageDSN:     os.Getenv("STORAGE_DSN"),

		RateLimitRPS:    envFloat("RATE_LIMIT_RPS", 0),
		RateLimitJitter: envFloat("RATE_LIMIT_JITTER", 0),
	}

	setDefaults(cfg)

	if cfg.AuthToken == "" {
		return nil, errors.New("AUTH_TOKEN must be set")
	}
	if cfg.OwnerNumber == "" {
		return nil, errors.New("MY_NUMBER must be set")
	}

	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	if cfg.Transport == "" {
		cfg.Transport = "http"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8086"
	}
	if cfg.Fingerprint == "" {
		cfg.Fingerprint = "go"
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
