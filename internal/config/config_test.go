package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.True(t, decimal.NewFromInt(10000).Equal(cfg.PriceCeiling))
	assert.True(t, decimal.RequireFromString("1.00").Equal(cfg.PriceBandMin))
	assert.True(t, decimal.RequireFromString("500").Equal(cfg.PriceBandMax))
	assert.Equal(t, "0 2 * * *", cfg.SweepCron)
	assert.Equal(t, 4, cfg.SweepConcurrency)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_BACKEND", "spanner")
	t.Setenv("PRICE_BAND_MAX", "750.50")
	t.Setenv("SWEEP_CONCURRENCY", "8")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, BackendSpanner, cfg.StoreBackend)
	assert.True(t, decimal.RequireFromString("750.5").Equal(cfg.PriceBandMax))
	assert.Equal(t, 8, cfg.SweepConcurrency)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"STORE_BACKEND":     "postgres",
		"PRICE_CEILING":     "0",
		"PRICE_BAND_MIN":    "900",
		"SWEEP_CONCURRENCY": "0",
		"TIMEZONE":          "Mars/Olympus",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
