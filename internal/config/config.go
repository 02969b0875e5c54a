// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Storage backends.
const (
	BackendSQLite  = "sqlite"
	BackendSpanner = "spanner"
)

// Config holds runtime configuration for the service binaries.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	HTTPAddr           string        `envconfig:"HTTP_ADDR" default:":8080"`
	HTTPReadTimeout    time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	HTTPWriteTimeout   time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"15s"`
	HTTPRequestTimeout time.Duration `envconfig:"HTTP_REQUEST_TIMEOUT" default:"30s"`
	HTTPRateLimit      int           `envconfig:"HTTP_RATE_LIMIT" default:"120"`

	StoreBackend    string `envconfig:"STORE_BACKEND" default:"sqlite"`
	SQLiteDSN       string `envconfig:"SQLITE_DSN" default:"file:inventory.db"`
	SpannerDatabase string `envconfig:"SPANNER_DATABASE" default:"projects/test-project/instances/emulator-instance/databases/test-db"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`

	// PriceCeiling rejects base prices above it. PriceBandMin/Max only raise alerts.
	PriceCeiling decimal.Decimal `envconfig:"PRICE_CEILING" default:"10000"`
	PriceBandMin decimal.Decimal `envconfig:"PRICE_BAND_MIN" default:"1.00"`
	PriceBandMax decimal.Decimal `envconfig:"PRICE_BAND_MAX" default:"500.00"`

	SweepCron        string `envconfig:"SWEEP_CRON" default:"0 2 * * *"`
	SweepConcurrency int    `envconfig:"SWEEP_CONCURRENCY" default:"4"`

	// Timezone sets the calendar day expiration is judged on and the sweep cron's clock.
	Timezone string `envconfig:"TIMEZONE" default:"UTC"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendSQLite, BackendSpanner:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if !c.PriceCeiling.IsPositive() {
		return errors.New("config: PRICE_CEILING must be positive")
	}
	if c.PriceBandMin.GreaterThan(c.PriceBandMax) {
		return errors.New("config: PRICE_BAND_MIN must not exceed PRICE_BAND_MAX")
	}
	if c.SweepConcurrency < 1 {
		return errors.New("config: SWEEP_CONCURRENCY must be at least 1")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: TIMEZONE: %w", err)
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// Location resolves Timezone; Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
