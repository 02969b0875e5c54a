package get_product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/producttest"
)

func TestGet_StatusReflectsToday(t *testing.T) {
	store := producttest.NewStore(t)
	clk := producttest.NewClock()
	h := NewHandler(store, clk)
	ctx := context.Background()

	d := producttest.Draft("A")
	d.ExpirationDate = producttest.DateIn(clk, 11)
	purchase := domain.MustMoney("60")
	d.PurchasePrice = purchase
	p := producttest.Seed(t, store, clk, d)

	got, err := h.Execute(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, "FRESH", got.ExpirationStatus)
	assert.Equal(t, "100.00", got.BasePrice)
	require.NotNil(t, got.PurchasePrice)
	assert.Equal(t, "60.00", *got.PurchasePrice)
	assert.Equal(t, "2026-03-01T09:00:00Z", got.CreatedAt)

	clk.AdvanceDays(1)
	got, err = h.Execute(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, "NEAR_EXPIRY", got.ExpirationStatus)
	assert.Equal(t, 10, *got.DaysRemaining)
}

func TestGet_NotFound(t *testing.T) {
	h := NewHandler(producttest.NewStore(t), producttest.NewClock())
	_, err := h.Execute(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
