package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/murkotick/stock-alert-service/internal/bootstrap"
	"github.com/murkotick/stock-alert-service/internal/config"
	"github.com/murkotick/stock-alert-service/internal/jobs"
	"github.com/murkotick/stock-alert-service/internal/pkg/jobmetrics"
	"github.com/murkotick/stock-alert-service/internal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		zap.NewExample().Fatal("init logger", zap.Error(err))
	}

	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error("worker stopped", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run owns every resource the worker opens so its defers complete before main exits.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()

	app := bootstrap.NewApp(store, bootstrap.SettingsFrom(cfg), bootstrap.ClockFrom(cfg), log, jobmetrics.NewMetrics(nil))

	sweepTask, err := jobs.NewExpirationSweepTask("cron")
	if err != nil {
		return fmt.Errorf("build sweep task: %w", err)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:      log,
		Concurrency: 1,
		Location:    cfg.Location(),
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskExpirationSweep, Handler: jobs.NewSweepHandler(app.Sweep, log)},
		},
		Cron: []jobs.CronRegistration{
			// Unique keeps a slow sweep from overlapping the next day's.
			{Spec: cfg.SweepCron, Task: sweepTask, Options: []asynq.Option{asynq.MaxRetry(3), asynq.Unique(23 * time.Hour)}},
		},
	})
	if err != nil {
		return fmt.Errorf("init worker: %w", err)
	}

	log.Info("worker started", zap.String("cron", cfg.SweepCron), zap.String("timezone", cfg.Timezone))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("worker run: %w", err)
	}
	return nil
}
