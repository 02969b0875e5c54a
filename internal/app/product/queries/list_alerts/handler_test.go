package list_alerts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/producttest"
)

func TestAlerts(t *testing.T) {
	store := producttest.NewStore(t)
	clk := producttest.NewClock()
	h := NewHandler(store)
	ctx := context.Background()

	a := producttest.Seed(t, store, clk, producttest.Draft("A"))
	b := producttest.Seed(t, store, clk, producttest.Draft("B"))

	cs := contracts.NewChangeSet()
	cs.AddAlert(domain.NewAlert("al-1", a.ID(), domain.AlertCandidate{Kind: domain.AlertLowStock, Severity: domain.SeverityWarning, Description: "low"}, "admin", clk.Now()))
	clk.AdvanceDays(1)
	cs.AddAlert(domain.NewAlert("al-2", b.ID(), domain.AlertCandidate{Kind: domain.AlertExpired, Severity: domain.SeverityCritical, Description: "gone"}, "system", clk.Now()))
	require.NoError(t, store.Apply(ctx, cs))

	all, err := h.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "al-1", all[0].AlertID)
	assert.Equal(t, "al-2", all[1].AlertID)

	byB, err := h.ByProduct(ctx, b.ID())
	require.NoError(t, err)
	require.Len(t, byB, 1)
	assert.Equal(t, string(domain.AlertExpired), byB[0].Kind)
	assert.Equal(t, "system", byB[0].Actor)

	none, err := h.ByProduct(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}
