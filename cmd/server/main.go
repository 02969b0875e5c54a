package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/murkotick/stock-alert-service/internal/bootstrap"
	"github.com/murkotick/stock-alert-service/internal/config"
	"github.com/murkotick/stock-alert-service/internal/pkg/jobmetrics"
	"github.com/murkotick/stock-alert-service/internal/pkg/logger"
	producthttp "github.com/murkotick/stock-alert-service/internal/transport/http/product"
	"github.com/murkotick/stock-alert-service/internal/transport/http/router"
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
		log.Error("server stopped", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

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
	api := producthttp.NewHandler(app.Commands, app.Queries, app.Clock, log)

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: router.New(router.Config{
			Logger:         log,
			RequestTimeout: cfg.HTTPRequestTimeout,
			RateLimit:      cfg.HTTPRateLimit,
			Production:     cfg.IsProduction(),
			Gatherer:       prometheus.DefaultGatherer,
		}, api),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("backend", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
		_ = srv.Close()
	}
	if serveErr != nil {
		return fmt.Errorf("http serve: %w", serveErr)
	}
	log.Info("server stopped")
	return nil
}
