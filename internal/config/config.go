package config

import (
	"errors"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"production"`

	DBConnectionString string `envconfig:"DATABASE_URL" required:"true"`

	// Identity provider settings. Two naming pairs are accepted; the
	// SUPABASE_* names win when both are set (see Load).
	IdentityURL string `envconfig:"IDENTITY_URL"`
	IdentityKey string `envconfig:"IDENTITY_KEY"`

	// Music generation vendor settings
	MusicAPIBaseURL string `envconfig:"MUSIC_API_BASE_URL" default:"https://api.sunoapi.org"`
	MusicAPIKey     string `envconfig:"MUSIC_API_KEY"`

	// Rate limiter settings, applied to /api/ paths only
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"15m"`
	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"100"`

	// Optional shared rate-limit store. Empty means in-memory.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		cfg.IdentityURL = v
	}
	if v := os.Getenv("SUPABASE_SERVICE_ROLE_KEY"); v != "" {
		cfg.IdentityKey = v
	}
	if cfg.IdentityURL == "" {
		return nil, errors.New("identity provider URL missing: set SUPABASE_URL or IDENTITY_URL")
	}
	if cfg.IdentityKey == "" {
		return nil, errors.New("identity provider key missing: set SUPABASE_SERVICE_ROLE_KEY or IDENTITY_KEY")
	}
	return &cfg, nil
}
