// Package sweep re-evaluates expiration alerts for every dated product.
package sweep

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain/services"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/shared"
	"github.com/murkotick/stock-alert-service/internal/pkg/clock"
	"github.com/murkotick/stock-alert-service/internal/pkg/jobmetrics"
	"github.com/murkotick/stock-alert-service/internal/pkg/logger"
)

// JobName labels the sweep in logs and metrics.
const JobName = "expiration_sweep"

// Summary counts what a run did. Every listed product ends up in exactly one
// of Raised, Clean, Skipped or Failed.
type Summary struct {
	Scanned int `json:"scanned"`
	Raised  int `json:"raised"`
	Clean   int `json:"clean"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Job is the daily expiration sweep.
type Job struct {
	Products    contracts.ProductStore
	Alerts      contracts.AlertStore
	Committer   contracts.Committer
	Locker      contracts.Locker
	Expiration  *services.ExpirationClassifier
	Clock       clock.Clock
	Concurrency int
	Logger      *zap.Logger
	Metrics     *jobmetrics.Metrics
}

func NewJob(store contracts.Store, locker contracts.Locker, clk clock.Clock, concurrency int,
	log *zap.Logger, metrics *jobmetrics.Metrics) *Job {
	return &Job{
		Products:    store,
		Alerts:      store,
		Committer:   store,
		Locker:      locker,
		Expiration:  services.NewExpirationClassifier(),
		Clock:       clk,
		Concurrency: concurrency,
		Logger:      log,
		Metrics:     metrics,
	}
}

type outcome int

const (
	outcomeClean outcome = iota
	outcomeRaised
	outcomeSkipped
)

// Run evaluates every product with an expiration date. Per-product failures
// are logged and counted; only a failed listing or a cancelled context makes
// Run return an error.
func (j *Job) Run(ctx context.Context) (summary Summary, err error) {
	tracker := j.Metrics.Track(JobName)
	defer func() { err = tracker.End(err) }()

	log := logger.OrNop(j.Logger).With(zap.String("job", JobName))
	start := time.Now()

	products, err := j.Products.ListAll(ctx)
	if err != nil {
		log.Error("list products failed", zap.Error(err))
		return Summary{}, err
	}

	today := clock.Today(j.Clock)
	now := j.Clock.Now()
	log.Info("starting expiration sweep", zap.Int("products", len(products)), zap.Stringer("today", today))

	var raised, clean, skipped, failed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(max(j.Concurrency, 1))
	for _, p := range products {
		if ctx.Err() != nil {
			break
		}
		if p.ExpirationDate() == nil {
			skipped.Add(1)
			continue
		}
		id := p.ID()
		g.Go(func() error {
			res, err := j.evaluate(ctx, id, today, now)
			switch {
			case err != nil:
				failed.Add(1)
				log.Warn("evaluate product failed", zap.String("product_id", id), zap.Error(err))
			case res == outcomeRaised:
				raised.Add(1)
			case res == outcomeSkipped:
				skipped.Add(1)
			default:
				clean.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	summary = Summary{
		Scanned: len(products),
		Raised:  int(raised.Load()),
		Clean:   int(clean.Load()),
		Skipped: int(skipped.Load()),
		Failed:  int(failed.Load()),
	}
	j.Metrics.AddItems(JobName, jobmetrics.OutcomeRaised, summary.Raised)
	j.Metrics.AddItems(JobName, jobmetrics.OutcomeClean, summary.Clean)
	j.Metrics.AddItems(JobName, jobmetrics.OutcomeSkipped, summary.Skipped)
	j.Metrics.AddItems(JobName, jobmetrics.OutcomeFailed, summary.Failed)

	log.Info("completed expiration sweep",
		zap.Int("scanned", summary.Scanned),
		zap.Int("raised", summary.Raised),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", time.Since(start)),
	)
	return summary, ctx.Err()
}

// evaluate reloads the product under its lock so it sees writes that landed
// after the listing.
func (j *Job) evaluate(ctx context.Context, id string, today civil.Date, now time.Time) (outcome, error) {
	unlock, err := j.Locker.Lock(ctx, shared.ProductLockKey(id))
	if err != nil {
		return outcomeClean, err
	}
	defer unlock()

	p, err := j.Products.GetProduct(ctx, id)
	if errors.Is(err, domain.ErrProductNotFound) {
		return outcomeSkipped, nil
	}
	if err != nil {
		return outcomeClean, err
	}
	if p.ExpirationDate() == nil {
		return outcomeSkipped, nil
	}

	alert, err := shared.ExpirationAlert(ctx, j.Alerts, j.Expiration, p, today, shared.SystemActor, now)
	if err != nil {
		return outcomeClean, err
	}
	if alert == nil {
		return outcomeClean, nil
	}

	cs := contracts.NewChangeSet()
	cs.AddAlert(alert)
	if err := shared.Commit(ctx, j.Committer, j.Alerts, cs); err != nil {
		return outcomeClean, err
	}
	if len(cs.Alerts()) == 0 {
		// Another process recorded it between the check and the commit.
		return outcomeClean, nil
	}
	return outcomeRaised, nil
}
