package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds the application configuration, populated from environment
// variables.
type AppConfig struct {
	DBURL        string `envconfig:"DB_URL" required:"true"`
	RedisURL     string `envconfig:"REDIS_URL" required:"true"`
	SymmetricKey string `envconfig:"SYMMETRIC_KEY" required:"true"`

	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8940"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`

	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"15"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"30"`

	SMTPHost string `envconfig:"SMTP_HOST"`
	SMTPPort int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser string `envconfig:"SMTP_USER"`
	SMTPPass string `envconfig:"SMTP_PASS"`
}

// Load reads the configuration from the environment.
func Load() (*AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment configuration: %w", err)
	}
	if len(cfg.SymmetricKey) != 32 {
		return nil, fmt.Errorf("SYMMETRIC_KEY must be 32 bytes long, got %d", len(cfg.SymmetricKey))
	}
	return &cfg, nil
}
