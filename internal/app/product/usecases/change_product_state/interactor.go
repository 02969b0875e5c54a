package change_product_state

import (
	"context"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/shared"
	"github.com/murkotick/stock-alert-service/internal/pkg/clock"
)

// Request sets the active flag of a product.
type Request struct {
	ProductID string
	Active    bool
}

type Interactor struct {
	Products  contracts.ProductStore
	Committer contracts.Committer
	Locker    contracts.Locker
	Clock     clock.Clock
}

func NewInteractor(store contracts.Store, locker contracts.Locker, clk clock.Clock) *Interactor {
	return &Interactor{
		Products:  store,
		Committer: store,
		Locker:    locker,
		Clock:     clk,
	}
}

// Execute activates or deactivates the product. Requesting the current state
// again returns the product unchanged and writes nothing.
func (it *Interactor) Execute(ctx context.Context, req Request) (*domain.Product, error) {
	unlock, err := it.Locker.Lock(ctx, shared.ProductLockKey(req.ProductID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	product, err := it.Products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	now := it.Clock.Now()
	changed, err := product.SetActive(req.Active, clock.Today(it.Clock), now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return product, nil
	}

	cs := contracts.NewChangeSet()
	cs.UpdateProduct(product)
	if err := shared.AddOutboxEvents(cs, product, now); err != nil {
		return nil, err
	}
	if err := it.Committer.Apply(ctx, cs); err != nil {
		return nil, err
	}
	product.ClearEvents()
	product.Changes().Clear()

	return product, nil
}
