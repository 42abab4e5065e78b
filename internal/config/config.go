package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration. The signing secret and token
// lifetime are injected into the token manager from here; nothing else reads
// process environment directly.
type Config struct {
	Port         int           `env:"PORT" envDefault:"3003"`
	DatabasePath string        `env:"DATABASE_PATH" envDefault:"./bloglist.db"`
	JWTSecret    string        `env:"JWT_SECRET" envDefault:"dev-only-secret"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"15m"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
