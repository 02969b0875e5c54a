package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/murkotick/stock-alert-service/internal/app/product/dto"
	"github.com/murkotick/stock-alert-service/internal/app/product/producttest"
	"github.com/murkotick/stock-alert-service/internal/app/product/sweep"
	"github.com/murkotick/stock-alert-service/internal/config"
	"github.com/murkotick/stock-alert-service/internal/jobs"
)

func testConfig(dsn string) *config.Config {
	return &config.Config{
		AppEnv:           "test",
		StoreBackend:     config.BackendSQLite,
		SQLiteDSN:        dsn,
		PriceCeiling:     decimal.NewFromInt(10000),
		PriceBandMin:     decimal.NewFromInt(1),
		PriceBandMax:     decimal.NewFromInt(500),
		SweepConcurrency: 2,
	}
}

func run(t *testing.T, d *Deps, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(d)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSweepThenAlerts(t *testing.T) {
	store := producttest.NewStore(t)
	clk := producttest.NewClock()
	d := producttest.Draft("MLK-1")
	d.ExpirationDate = producttest.DateIn(clk, -1)
	p := producttest.Seed(t, store, clk, d)

	deps := &Deps{Config: testConfig(":memory:"), Store: store, Clock: clk, Logger: zaptest.NewLogger(t)}

	out, err := run(t, deps, "sweep", "--concurrency", "1")
	require.NoError(t, err)
	var summary sweep.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 1, summary.Raised)

	out, err = run(t, deps, "alerts", "--product", p.ID())
	require.NoError(t, err)
	var alerts []dto.AlertDTO
	require.NoError(t, json.Unmarshal([]byte(out), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "expired", alerts[0].Kind)
	assert.Equal(t, "system", alerts[0].Actor)

	out, err = run(t, deps, "alerts")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &alerts))
	assert.Len(t, alerts, 1)
}

func TestMigrate_SQLite(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "inventory.db")
	deps := &Deps{Config: testConfig(dsn), Logger: zaptest.NewLogger(t)}

	out, err := run(t, deps, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema is up to date")

	_, err = run(t, deps, "migrate")
	assert.NoError(t, err)
}

func TestMigrate_SpannerMissingDDL(t *testing.T) {
	cfg := testConfig("")
	cfg.StoreBackend = config.BackendSpanner
	deps := &Deps{Config: cfg, Logger: zaptest.NewLogger(t)}

	_, err := run(t, deps, "migrate", "--ddl", filepath.Join(t.TempDir(), "missing.sql"))
	assert.ErrorContains(t, err, "read DDL")
}

func TestSweep_Enqueue(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig("")
	cfg.RedisAddr = mr.Addr()
	// No store: enqueueing must not open one.
	deps := &Deps{Config: cfg, Logger: zaptest.NewLogger(t)}

	out, err := run(t, deps, "sweep", "--enqueue")
	require.NoError(t, err)

	var got enqueued
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, jobs.QueueDefault, got.Queue)
	assert.NotEmpty(t, got.TaskID)
	assert.Nil(t, deps.Store)

	pending, err := mr.List("asynq:{" + jobs.QueueDefault + "}:pending")
	require.NoError(t, err)
	assert.Equal(t, []string{got.TaskID}, pending)
}

func TestSweep_EnqueueRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig("")
	cfg.RedisAddr = mr.Addr()
	mr.Close()

	_, err := run(t, &Deps{Config: cfg, Logger: zaptest.NewLogger(t)}, "sweep", "--enqueue")
	assert.ErrorContains(t, err, "enqueue sweep")
}
