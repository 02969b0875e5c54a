package delete_product

import (
	"context"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/shared"
	"github.com/murkotick/stock-alert-service/internal/pkg/clock"
)

type Request struct {
	ProductID string
}

// Interactor removes an inactive product and its price history. Alerts stay.
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

func (it *Interactor) Execute(ctx context.Context, req Request) error {
	unlock, err := it.Locker.Lock(ctx, shared.ProductLockKey(req.ProductID))
	if err != nil {
		return err
	}
	defer unlock()

	product, err := it.Products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return err
	}

	now := it.Clock.Now()
	if err := product.MarkDeleted(now); err != nil {
		return err
	}

	cs := contracts.NewChangeSet()
	cs.DeleteProduct(product.ID())
	if err := shared.AddOutboxEvents(cs, product, now); err != nil {
		return err
	}
	return it.Committer.Apply(ctx, cs)
}
