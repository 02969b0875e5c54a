package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/producttest"
)

func alertOf(productID string, kind domain.AlertKind) *domain.Alert {
	return domain.NewAlert("", productID, domain.AlertCandidate{Kind: kind, Severity: domain.SeverityWarning, Description: string(kind)},
		"admin", producttest.Epoch)
}

func TestCommit_DropsAlertsRecordedByAnotherWriter(t *testing.T) {
	store := producttest.NewStore(t)
	clk := producttest.NewClock()
	ctx := context.Background()
	p := producttest.Seed(t, store, clk, producttest.Draft("A"))

	// Recorded by someone else after our dedup check ran.
	other := contracts.NewChangeSet()
	other.AddAlert(NewAlerts(p.ID(), []domain.AlertCandidate{{Kind: domain.AlertExpired, Severity: domain.SeverityCritical, Description: "x"}}, SystemActor, clk.Now())[0])
	require.NoError(t, store.Apply(ctx, other))

	cs := contracts.NewChangeSet()
	for _, a := range NewAlerts(p.ID(), []domain.AlertCandidate{
		{Kind: domain.AlertPriceVariance, Severity: domain.SeverityWarning, Description: "moved"},
		{Kind: domain.AlertExpired, Severity: domain.SeverityCritical, Description: "expired"},
	}, "alice", clk.Now()) {
		cs.AddAlert(a)
	}

	require.NoError(t, Commit(ctx, store, store, cs))
	assert.Equal(t, []domain.AlertKind{domain.AlertPriceVariance}, producttest.AlertKinds(cs.Alerts()))

	stored, err := store.ListAlertsByProduct(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, []domain.AlertKind{domain.AlertExpired, domain.AlertPriceVariance}, producttest.AlertKinds(stored))
}

type rejectingCommitter struct{ calls int }

func (c *rejectingCommitter) Apply(context.Context, *contracts.ChangeSet) error {
	c.calls++
	return domain.ErrAlertAlreadyRaised
}

func TestCommit_GivesUpWhenNothingToDrop(t *testing.T) {
	store := producttest.NewStore(t)
	committer := &rejectingCommitter{}

	cs := contracts.NewChangeSet()
	cs.AddAlert(alertOf("p-1", domain.AlertLowStock))

	err := Commit(context.Background(), committer, store, cs)
	assert.ErrorIs(t, err, domain.ErrAlertAlreadyRaised)
	assert.Equal(t, 1, committer.calls)
	assert.Len(t, cs.Alerts(), 1)
}
