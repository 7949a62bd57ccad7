package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Config struct {
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"PORT" default:"8080"`
	BaseURL         string        `envconfig:"BASE_URL" default:"http://localhost:8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	MaxAttempts     int           `envconfig:"MAX_ASSIGN_ATTEMPTS" default:"100"`
	MaxParticipants int           `envconfig:"MAX_PARTICIPANTS" default:"200"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	SweepInterval   time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"5m"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads an optional .env file, then the process environment.
func Load(envFiles ...string) (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var err error
	if c.Port <= 0 || c.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if u, perr := url.Parse(c.BaseURL); perr != nil || u.Scheme == "" || u.Host == "" {
		err = multierr.Append(err, fmt.Errorf("BASE_URL must be an absolute URL, got %q", c.BaseURL))
	}
	if _, perr := zap.ParseAtomicLevel(c.LogLevel); perr != nil {
		err = multierr.Append(err, fmt.Errorf("LOG_LEVEL: %w", perr))
	}
	if c.MaxAttempts <= 0 {
		err = multierr.Append(err, errors.New("MAX_ASSIGN_ATTEMPTS must be positive"))
	}
	if c.MaxParticipants < 2 {
		err = multierr.Append(err, errors.New("MAX_PARTICIPANTS must be at least 2"))
	}
	if c.SessionTTL <= 0 {
		err = multierr.Append(err, errors.New("SESSION_TTL must be positive"))
	}
	if c.SweepInterval <= 0 {
		err = multierr.Append(err, errors.New("SESSION_SWEEP_INTERVAL must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		err = multierr.Append(err, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	return err
}

// NewLogger builds a production zap logger at the configured level.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	return zc.Build()
}
