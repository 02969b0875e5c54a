// Package cli provides the Cobra-based operator CLI, inventoryctl.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/queries/list_alerts"
	"github.com/murkotick/stock-alert-service/internal/app/product/repo/spannerstore"
	"github.com/murkotick/stock-alert-service/internal/app/product/repo/sqlitestore"
	"github.com/murkotick/stock-alert-service/internal/bootstrap"
	"github.com/murkotick/stock-alert-service/internal/config"
	"github.com/murkotick/stock-alert-service/internal/jobs"
	"github.com/murkotick/stock-alert-service/internal/pkg/clock"
	"github.com/murkotick/stock-alert-service/internal/pkg/jobmetrics"
	"github.com/murkotick/stock-alert-service/internal/pkg/logger"
)

// Deps are the collaborators of the commands. Zero fields are filled from the
// environment before a command runs; tests inject them instead.
type Deps struct {
	Config *config.Config
	Store  contracts.Store
	Clock  clock.Clock
	Logger *zap.Logger

	ownsStore bool
}

// Execute runs inventoryctl with the process arguments.
func Execute() error {
	return NewRootCommand(&Deps{}).Execute()
}

func NewRootCommand(d *Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "inventoryctl",
		Short:         "Operate the stock alert service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if d.Config == nil {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				d.Config = cfg
			}
			if d.Logger == nil {
				log, err := logger.New(d.Config.AppEnv)
				if err != nil {
					return err
				}
				d.Logger = log
			}
			if d.Clock == nil {
				d.Clock = bootstrap.ClockFrom(d.Config)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if d.ownsStore && d.Store != nil {
				return d.Store.Close()
			}
			return nil
		},
	}

	root.AddCommand(newMigrateCommand(d), newSweepCommand(d), newAlertsCommand(d))
	return root
}

func (d *Deps) store(ctx context.Context) (contracts.Store, error) {
	if d.Store != nil {
		return d.Store, nil
	}
	s, err := bootstrap.OpenStore(ctx, d.Config)
	if err != nil {
		return nil, err
	}
	d.Store, d.ownsStore = s, true
	return s, nil
}

func newMigrateCommand(d *Deps) *cobra.Command {
	var ddlPath string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema to the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			switch d.Config.StoreBackend {
			case config.BackendSpanner:
				stmts, err := spannerstore.ReadDDLStatements(ddlPath)
				if err != nil {
					return fmt.Errorf("read DDL: %w", err)
				}
				if len(stmts) == 0 {
					return fmt.Errorf("no DDL statements found in %s", ddlPath)
				}
				if err := spannerstore.ApplyDDL(ctx, d.Config.SpannerDatabase, stmts); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %d DDL statements to %s\n", len(stmts), d.Config.SpannerDatabase)
			default:
				s, err := sqlitestore.Open(ctx, d.Config.SQLiteDSN)
				if err != nil {
					return err
				}
				defer s.Close()
				fmt.Fprintf(cmd.OutOrStdout(), "SQLite schema is up to date at %s\n", d.Config.SQLiteDSN)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&ddlPath, "ddl", "migrations/001_initial_schema.sql", "Spanner DDL file")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "time allowed for the schema change")
	return cmd
}

// enqueued is printed by sweep --enqueue.
type enqueued struct {
	TaskID string `json:"task_id"`
	Queue  string `json:"queue"`
}

func newSweepCommand(d *Deps) *cobra.Command {
	var (
		concurrency int
		enqueue     bool
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the expiration sweep once, now",
		Long: "Run the expiration sweep once, now. With --enqueue the sweep is handed to the\n" +
			"worker through Redis instead, so it runs under the worker's configuration.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if enqueue {
				client := jobs.NewClient(asynq.RedisClientOpt{Addr: d.Config.RedisAddr})
				defer client.Close()

				info, err := client.EnqueueSweep(cmd.Context(), "manual")
				if err != nil {
					return fmt.Errorf("enqueue sweep: %w", err)
				}
				d.Logger.Info("sweep enqueued", zap.String("task_id", info.ID), zap.String("queue", info.Queue))
				return writeJSON(cmd.OutOrStdout(), enqueued{TaskID: info.ID, Queue: info.Queue})
			}

			store, err := d.store(cmd.Context())
			if err != nil {
				return err
			}
			settings := bootstrap.SettingsFrom(d.Config)
			if concurrency > 0 {
				settings.SweepConcurrency = concurrency
			}
			app := bootstrap.NewApp(store, settings, d.Clock, d.Logger, jobmetrics.NewMetrics(nil))

			summary, err := app.Sweep.Run(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), summary)
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "parallel evaluations (default SWEEP_CONCURRENCY)")
	cmd.Flags().BoolVar(&enqueue, "enqueue", false, "queue the sweep for the worker instead of running it here")
	return cmd
}

func newAlertsCommand(d *Deps) *cobra.Command {
	var productID string
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Print alerts as JSON, optionally for one product",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := d.store(cmd.Context())
			if err != nil {
				return err
			}
			h := list_alerts.NewHandler(store)
			if productID != "" {
				as, err := h.ByProduct(cmd.Context(), productID)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), as)
			}
			as, err := h.All(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), as)
		},
	}
	cmd.Flags().StringVar(&productID, "product", "", "product id")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
