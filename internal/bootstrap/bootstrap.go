// Package bootstrap wires the stores, usecases and jobs the binaries share.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain/services"
	"github.com/murkotick/stock-alert-service/internal/app/product/queries/get_product"
	"github.com/murkotick/stock-alert-service/internal/app/product/queries/list_alerts"
	"github.com/murkotick/stock-alert-service/internal/app/product/queries/list_products"
	"github.com/murkotick/stock-alert-service/internal/app/product/queries/list_references"
	"github.com/murkotick/stock-alert-service/internal/app/product/queries/price_history"
	"github.com/murkotick/stock-alert-service/internal/app/product/repo/spannerstore"
	"github.com/murkotick/stock-alert-service/internal/app/product/repo/sqlitestore"
	"github.com/murkotick/stock-alert-service/internal/app/product/sweep"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/change_product_state"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/delete_product"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/update_product"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/upsert_reference"
	"github.com/murkotick/stock-alert-service/internal/config"
	"github.com/murkotick/stock-alert-service/internal/pkg/clock"
	"github.com/murkotick/stock-alert-service/internal/pkg/jobmetrics"
	"github.com/murkotick/stock-alert-service/internal/pkg/keylock"
	producthttp "github.com/murkotick/stock-alert-service/internal/transport/http/product"
)

// OpenStore connects the backend selected by STORE_BACKEND.
func OpenStore(ctx context.Context, cfg *config.Config) (contracts.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendSpanner:
		s, err := spannerstore.Open(ctx, cfg.SpannerDatabase)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendSQLite:
		s, err := sqlitestore.Open(ctx, cfg.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("bootstrap: unknown store backend %q", cfg.StoreBackend)
}

// ClockFrom returns the wall clock with the configured calendar zone.
func ClockFrom(cfg *config.Config) clock.Clock {
	return clock.Zoned{Clock: clock.RealClock{}, Location: cfg.Location()}
}

// Settings are the business knobs taken from configuration.
type Settings struct {
	Limits           domain.PriceLimits
	Band             services.PriceBand
	SweepConcurrency int
}

func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		Limits: domain.PriceLimits{Ceiling: domain.MoneyFromDecimal(cfg.PriceCeiling)},
		Band: services.PriceBand{
			Min: domain.MoneyFromDecimal(cfg.PriceBandMin),
			Max: domain.MoneyFromDecimal(cfg.PriceBandMax),
		},
		SweepConcurrency: cfg.SweepConcurrency,
	}
}

// App holds the wired application layer. Commands, queries and the sweep
// share one lock table, so HTTP writes and sweep evaluations of the same
// product serialize.
type App struct {
	Store    contracts.Store
	Clock    clock.Clock
	Commands producthttp.Commands
	Queries  producthttp.Queries
	Sweep    *sweep.Job
}

func NewApp(store contracts.Store, s Settings, clk clock.Clock, log *zap.Logger, metrics *jobmetrics.Metrics) *App {
	locker := keylock.New()
	rules := services.NewPriceRuleEngine(s.Band)

	return &App{
		Store: store,
		Clock: clk,
		Commands: producthttp.Commands{
			Create:    create_product.NewInteractor(store, locker, s.Limits, rules, clk),
			Update:    update_product.NewInteractor(store, locker, s.Limits, rules, clk),
			SetActive: change_product_state.NewInteractor(store, locker, clk),
			Delete:    delete_product.NewInteractor(store, locker, clk),
			Reference: upsert_reference.NewInteractor(store),
		},
		Queries: producthttp.Queries{
			Get:        get_product.NewHandler(store, clk),
			List:       list_products.NewHandler(store, clk),
			Alerts:     list_alerts.NewHandler(store),
			History:    price_history.NewHandler(store, store),
			References: list_references.NewHandler(store, store, store),
		},
		Sweep: sweep.NewJob(store, locker, clk, s.SweepConcurrency, log, metrics),
	}
}
