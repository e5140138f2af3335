package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/acksites/quoterelay/pkg/logger"
	"github.com/acksites/quoterelay/pkg/mailer/resend"
	"github.com/acksites/quoterelay/relay"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address            string        `env:"ADDRESS" envDefault:":8080"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	StaticDir          string        `env:"STATIC_DIR"`
	MetricsPath        string        `env:"METRICS_PATH" envDefault:"/metrics"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// Config is the whole process configuration, read once at start.
type Config struct {
	Server ServerConfig
	Log    logger.Config
	Sentry logger.SentryConfig
	Relay  relay.Config
	Resend resend.Config
}

// loadConfig reads optional dotenv files, then the environment.
// Variables already set in the environment win over dotenv values.
func loadConfig(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}
	return parseConfig(env.Options{})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Relay.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("RELAY_MAX_BODY_BYTES must be positive, got %d", cfg.Relay.MaxBodyBytes)
	}
	return cfg, nil
}
