package delete_product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/producttest"
	"github.com/murkotick/stock-alert-service/internal/pkg/clock"
	"github.com/murkotick/stock-alert-service/internal/pkg/keylock"
)

func TestDelete_ActiveProductRejected(t *testing.T) {
	store := producttest.NewStore(t)
	clk := producttest.NewClock()
	it := NewInteractor(store, keylock.New(), clk)
	p := producttest.Seed(t, store, clk, producttest.Draft("A"))

	err := it.Execute(context.Background(), Request{ProductID: p.ID()})
	assert.ErrorIs(t, err, domain.ErrCannotDeleteActiveProduct)

	_, err = store.GetProduct(context.Background(), p.ID())
	assert.NoError(t, err)
}

func TestDelete_RemovesHistoryKeepsAlerts(t *testing.T) {
	store := producttest.NewStore(t)
	clk := producttest.NewClock()
	it := NewInteractor(store, keylock.New(), clk)
	ctx := context.Background()

	d := producttest.Draft("A")
	d.StockCurrent = 0
	p := producttest.Seed(t, store, clk, d)

	_, err := p.SetActive(false, clock.Today(clk), clk.Now())
	require.NoError(t, err)
	cs := contracts.NewChangeSet()
	cs.UpdateProduct(p)
	cs.AppendPriceChange(domain.ReconstructPriceChange(uuid.New().String(), p.ID(),
		domain.MustMoney("90"), domain.MustMoney("100"), "alice", clk.Now()))
	cs.AddAlert(domain.NewAlert(uuid.New().String(), p.ID(), domain.AlertCandidate{
		Kind: domain.AlertLowStock, Severity: domain.SeverityWarning, Description: "low",
	}, "alice", clk.Now()))
	require.NoError(t, store.Apply(ctx, cs))

	require.NoError(t, it.Execute(ctx, Request{ProductID: p.ID()}))

	_, err = store.GetProduct(ctx, p.ID())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	history, err := store.ListPriceHistory(ctx, p.ID())
	require.NoError(t, err)
	assert.Empty(t, history)

	alerts, err := store.ListAlertsByProduct(ctx, p.ID())
	require.NoError(t, err)
	assert.Len(t, alerts, 1)

	assert.Equal(t, []string{"product.deleted"}, producttest.OutboxTypes(t, store))
}

func TestDelete_NotFound(t *testing.T) {
	store := producttest.NewStore(t)
	it := NewInteractor(store, keylock.New(), producttest.NewClock())

	err := it.Execute(context.Background(), Request{ProductID: "missing"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
