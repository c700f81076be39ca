package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all process configuration.
type Config struct {
	Server     ServerConfig
	Warp10     Warp10Config
	QuantumViz QuantumVizConfig
	Logging    LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string   `envconfig:"PORT" default:"8000"`
	Host        string   `envconfig:"HOST" default:"0.0.0.0"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// Warp10Config holds the remote engine settings.
type Warp10Config struct {
	URL string `envconfig:"WARP10_URL" default:"http://localhost:8080/api/v0"`
	// RateLimit caps exec calls per second. Zero disables the limiter.
	RateLimit float64 `envconfig:"WARP10_RATE_LIMIT_RPS" default:"0"`
}

// QuantumVizConfig holds the widget asset settings. URL has no default.
type QuantumVizConfig struct {
	URL string `envconfig:"QUANTUMVIZ_URL"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Addr is the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
