package create_product

import (
	"context"

	"github.com/google/uuid"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain/services"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/shared"
	"github.com/murkotick/stock-alert-service/internal/pkg/clock"
)

// Request is the application-level create-product request.
type Request struct {
	Draft domain.ProductDraft
	Actor string
}

// Interactor implements the create-product usecase.
type Interactor struct {
	Products   contracts.ProductStore
	Alerts     contracts.AlertStore
	References shared.References
	Committer  contracts.Committer
	Locker     contracts.Locker
	Limits     domain.PriceLimits
	PriceRules *services.PriceRuleEngine
	Expiration *services.ExpirationClassifier
	Clock      clock.Clock
}

// NewInteractor wires the usecase against a full store.
func NewInteractor(store contracts.Store, locker contracts.Locker, limits domain.PriceLimits,
	rules *services.PriceRuleEngine, clk clock.Clock) *Interactor {
	return &Interactor{
		Products:   store,
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

// Execute validates and stores a new active product together with the alerts
// its initial state raises and its outbox events, in a single commit.
func (it *Interactor) Execute(ctx context.Context, req Request) (*shared.Result, error) {
	now := it.Clock.Now()
	today := clock.Today(it.Clock)

	// 1. Build domain aggregate (field validation happens in the constructor)
	product, err := domain.NewProduct(uuid.New().String(), req.Draft, it.Limits, req.Actor, now)
	if err != nil {
		return nil, err
	}

	// Serialize on code and name so concurrent creates cannot both pass the uniqueness check.
	unlock, err := shared.LockKeys(ctx, it.Locker,
		shared.CodeLockKey(product.Code()), shared.NameLockKey(product.CategoryID(), product.Name()))
	if err != nil {
		return nil, err
	}
	defer unlock()

	// 2. Cross-record checks
	if err := shared.CheckUnique(ctx, it.Products, product); err != nil {
		return nil, err
	}
	if err := it.References.Resolve(ctx, product); err != nil {
		return nil, err
	}

	// 3. Rules: no previous price on create
	alerts := shared.NewAlerts(product.ID(), it.PriceRules.Evaluate(services.PriceRuleInput{
		NewPrice:      product.BasePrice(),
		PurchasePrice: product.PurchasePrice(),
	}), req.Actor, now)

	conditions, err := shared.ConditionAlerts(ctx, it.Alerts, it.Expiration, product, today, req.Actor, now)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, conditions...)

	// 4. Build change set
	cs := contracts.NewChangeSet()
	cs.InsertProduct(product)
	for _, a := range alerts {
		cs.AddAlert(a)
	}
	if err := shared.AddOutboxEvents(cs, product, now); err != nil {
		return nil, err
	}

	// 5. Apply via committer
	if err := shared.Commit(ctx, it.Committer, it.Alerts, cs); err != nil {
		return nil, err
	}
	product.ClearEvents()

	return &shared.Result{Product: product, Alerts: cs.Alerts()}, nil
}
