package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/murkotick/stock-alert-service/internal/config"
)

func TestRun_ReturnsStartupErrors(t *testing.T) {
	log := zaptest.NewLogger(t)

	err := run(context.Background(), &config.Config{StoreBackend: "mongo", Timezone: "UTC"}, log)
	assert.ErrorContains(t, err, "open mongo store")

	cfg := &config.Config{
		StoreBackend:     config.BackendSQLite,
		SQLiteDSN:        "file:" + filepath.Join(t.TempDir(), "worker.db"),
		RedisAddr:        "127.0.0.1:0",
		SweepCron:        "not a cron spec",
		Timezone:         "UTC",
		SweepConcurrency: 1,
	}
	err = run(context.Background(), cfg, log)
	require.Error(t, err)
	assert.ErrorContains(t, err, "init worker")
}
