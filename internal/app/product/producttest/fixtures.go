// Package producttest provides fixtures for tests that need a working store.
package producttest

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/repo/sqlitestore"
	"github.com/murkotick/stock-alert-service/internal/pkg/clock"
)

// Reference ids seeded by NewStore.
const (
	CategoryDairy  = "cat-dairy"
	CategoryBakery = "cat-bakery"
	ProviderAcme   = "prov-acme"
	UnitPiece      = "unit-piece"
)

// Epoch is the instant fake clocks start at.
var Epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// NewStore opens an in-memory SQLite store seeded with reference data.
func NewStore(t *testing.T) *sqlitestore.Store {
	t.Helper()
	ctx := context.Background()

	s, err := sqlitestore.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	cs := contracts.NewChangeSet()
	cs.UpsertCategory(&domain.Category{ID: CategoryDairy, Name: "Dairy"})
	cs.UpsertCategory(&domain.Category{ID: CategoryBakery, Name: "Bakery"})
	cs.UpsertProvider(&domain.Provider{ID: ProviderAcme, Name: "Acme Foods"})
	cs.UpsertUnit(&domain.Unit{ID: UnitPiece, Name: "Piece", Abbreviation: "pc"})
	require.NoError(t, s.Apply(ctx, cs))
	return s
}

// NewClock returns a fake clock set to Epoch.
func NewClock() *clock.FakeClock {
	return clock.NewFake(Epoch)
}

// Draft returns a valid draft that raises no alerts: price 100, stock 10 over
// a minimum of 2, no expiration date.
func Draft(code string) domain.ProductDraft {
	return domain.ProductDraft{
		Name:         "Product " + code,
		Code:         code,
		BasePrice:    domain.MustMoney("100.00"),
		StockCurrent: 10,
		StockMinimum: 2,
		CategoryID:   CategoryDairy,
		UnitID:       UnitPiece,
	}
}

// Seed stores a product built from d directly, bypassing the usecases, so no
// alerts or outbox events are written.
func Seed(t *testing.T, s contracts.Committer, clk clock.Clock, d domain.ProductDraft) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(uuid.New().String(), d, domain.PriceLimits{}, "admin", clk.Now())
	require.NoError(t, err)

	cs := contracts.NewChangeSet()
	cs.InsertProduct(p)
	require.NoError(t, s.Apply(context.Background(), cs))
	p.ClearEvents()
	return p
}

// DateIn returns a pointer to the calendar day n days after today on clk.
func DateIn(clk clock.Clock, n int) *civil.Date {
	d := clock.Today(clk).AddDays(n)
	return &d
}

// OutboxTypes lists the event types in the outbox, oldest first.
func OutboxTypes(t *testing.T, s *sqlitestore.Store) []string {
	t.Helper()
	var types []string
	require.NoError(t, s.DB().Select(&types, `SELECT event_type FROM outbox_events ORDER BY created_at, rowid`))
	return types
}

// AlertKinds returns the kinds of as in order.
func AlertKinds(as []*domain.Alert) []domain.AlertKind {
	out := make([]domain.AlertKind, 0, len(as))
	for _, a := range as {
		out = append(out, a.Kind())
	}
	return out
}
