package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
}

// BackendConfig locates the REST API that owns all durable state. The base
// URL is the only knob most deployments set.
type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:8080"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=15s"`
}

// IsDevelopment reports whether the service runs in development mode
// (pretty console logs instead of JSON).
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
