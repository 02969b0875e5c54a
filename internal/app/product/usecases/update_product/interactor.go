package update_product

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain/services"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/shared"
	"github.com/murkotick/stock-alert-service/internal/pkg/clock"
)

// Request replaces every editable attribute of a product.
type Request struct {
	ProductID string
	Draft     domain.ProductDraft
	Actor     string
}

// Interactor applies a full update, records price history and evaluates the rules.
type Interactor struct {
	Products   contracts.ProductStore
	History    contracts.PriceHistoryStore
	Alerts     contracts.AlertStore
	References shared.References
	Committer  contracts.Committer
	Locker     contracts.Locker
	Limits     domain.PriceLimits
	PriceRules *services.PriceRuleEngine
	Expiration *services.ExpirationClassifier
	Clock      clock.Clock
}

func NewInteractor(store contracts.Store, locker contracts.Locker, limits domain.PriceLimits,
	rules *services.PriceRuleEngine, clk clock.Clock) *Interactor {
	return &Interactor{
		Products:   store,
		History:    store,
		Alerts:     store,
		References: shared.References{Categories: store, Providers: store, Units: store},
		Committer:  store,
		Locker:     locker,
		Limits:     limits,
		PriceRules: rules,
		Expiration: services.NewExpirationClassifier(),
		Clock:      clk,
	}
}

func (it *Interactor) Execute(ctx context.Context, req Request) (*shared.Result, error) {
	unlock, err := it.Locker.Lock(ctx, shared.ProductLockKey(req.ProductID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	// 1. Load aggregate
	current, err := it.Products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	now := it.Clock.Now()
	today := clock.Today(it.Clock)

	// 2. Domain method: current stays untouched as the pre-update snapshot
	next, err := current.Revise(req.Draft, req.Actor, it.Limits, now)
	if err != nil {
		return nil, err
	}

	var keys []string
	if next.Code() != current.Code() {
		keys = append(keys, shared.CodeLockKey(next.Code()))
	}
	if next.CategoryID() != current.CategoryID() || !strings.EqualFold(next.Name(), current.Name()) {
		keys = append(keys, shared.NameLockKey(next.CategoryID(), next.Name()))
	}
	unlockKeys, err := shared.LockKeys(ctx, it.Locker, keys...)
	if err != nil {
		return nil, err
	}
	defer unlockKeys()
	if err := shared.CheckUnique(ctx, it.Products, next); err != nil {
		return nil, err
	}
	if err := it.References.Resolve(ctx, next); err != nil {
		return nil, err
	}

	cs := contracts.NewChangeSet()
	cs.UpdateProduct(next)

	// 3. Price history and price rules, only when the price moved
	var alerts []*domain.Alert
	if ev := next.PriceChange(); ev != nil {
		record := domain.NewPriceChange(uuid.New().String(), ev)
		cs.AppendPriceChange(record)

		history, err := it.History.ListPriceHistory(ctx, next.ID())
		if err != nil {
			return nil, err
		}
		history = append(history, record)

		alerts = shared.NewAlerts(next.ID(), it.PriceRules.Evaluate(services.PriceRuleInput{
			PreviousPrice:     current.BasePrice(),
			NewPrice:          next.BasePrice(),
			PurchasePrice:     next.PurchasePrice(),
			RecentChangeCount: domain.CountChangesSince(history, now.Add(-services.FrequentChangeWindow)),
		}), req.Actor, now)
	}

	// 4. Expiration and stock
	conditions, err := shared.ConditionAlerts(ctx, it.Alerts, it.Expiration, next, today, req.Actor, now)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, conditions...)

	for _, a := range alerts {
		cs.AddAlert(a)
	}
	if err := shared.AddOutboxEvents(cs, next, now); err != nil {
		return nil, err
	}

	// 5. Apply via committer
	if err := shared.Commit(ctx, it.Committer, it.Alerts, cs); err != nil {
		return nil, err
	}
	next.ClearEvents()
	next.Changes().Clear()

	return &shared.Result{Product: next, Alerts: cs.Alerts()}, nil
}
