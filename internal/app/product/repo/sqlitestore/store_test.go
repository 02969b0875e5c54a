package sqlitestore

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	cs := contracts.NewChangeSet()
	cs.UpsertCategory(&domain.Category{ID: "cat-1", Name: "Dairy"})
	cs.UpsertCategory(&domain.Category{ID: "cat-2", Name: "Bakery"})
	cs.UpsertProvider(&domain.Provider{ID: "prov-1", Name: "Acme", Phone: "555-0100"})
	cs.UpsertUnit(&domain.Unit{ID: "unit-1", Name: "Piece", Abbreviation: "pc"})
	require.NoError(t, s.Apply(context.Background(), cs))
	return s
}

func newTestProduct(t *testing.T, id, code string, mutate func(*domain.ProductDraft)) *domain.Product {
	t.Helper()
	d := domain.ProductDraft{
		Name:         "Milk " + code,
		Code:         code,
		BasePrice:    domain.MustMoney("12.50"),
		StockCurrent: 10,
		StockMinimum: 2,
		CategoryID:   "cat-1",
		UnitID:       "unit-1",
	}
	if mutate != nil {
		mutate(&d)
	}
	p, err := domain.NewProduct(id, d, domain.PriceLimits{}, "admin", t0)
	require.NoError(t, err)
	return p
}

func insert(t *testing.T, s *Store, products ...*domain.Product) {
	t.Helper()
	cs := contracts.NewChangeSet()
	for _, p := range products {
		cs.InsertProduct(p)
	}
	require.NoError(t, s.Apply(context.Background(), cs))
}

func TestStore_InsertAndGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	exp := civil.Date{Year: 2026, Month: 3, Day: 20}
	prov := "prov-1"
	p := newTestProduct(t, "p-1", "MLK-1", func(d *domain.ProductDraft) {
		d.Description = "whole milk"
		d.PurchasePrice = domain.MustMoney("8.10")
		d.ExpirationDate = &exp
		d.ProviderID = &prov
	})
	insert(t, s, p)

	got, err := s.GetProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Milk MLK-1", got.Name())
	assert.Equal(t, "whole milk", got.Description())
	assert.True(t, got.BasePrice().Equals(domain.MustMoney("12.5")))
	require.NotNil(t, got.PurchasePrice())
	assert.Equal(t, "8.1", got.PurchasePrice().Decimal().String())
	require.NotNil(t, got.ExpirationDate())
	assert.Equal(t, exp, *got.ExpirationDate())
	require.NotNil(t, got.ProviderID())
	assert.Equal(t, "prov-1", *got.ProviderID())
	assert.True(t, got.IsActive())
	assert.True(t, got.CreatedAt().Equal(t0))
	assert.False(t, got.Changes().HasChanges())
}

func TestStore_GetProductNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_FindReturnsNilWhenAbsent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	insert(t, s, newTestProduct(t, "p-1", "MLK-1", nil))

	got, err := s.FindByCode(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.FindByCode(ctx, "MLK-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p-1", got.ID())

	got, err = s.FindByNameAndCategory(ctx, "milk mlk-1", "cat-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = s.FindByNameAndCategory(ctx, "Milk MLK-1", "cat-2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_DuplicateCodeMapsToDomainError(t *testing.T) {
	s := openTestStore(t)
	insert(t, s, newTestProduct(t, "p-1", "MLK-1", nil))

	cs := contracts.NewChangeSet()
	cs.InsertProduct(newTestProduct(t, "p-2", "MLK-1", func(d *domain.ProductDraft) { d.Name = "Other" }))
	err := s.Apply(context.Background(), cs)
	assert.ErrorIs(t, err, domain.ErrDuplicateProductCode)
}

func TestStore_ApplyIsAtomic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	insert(t, s, newTestProduct(t, "p-1", "MLK-1", nil))

	cs := contracts.NewChangeSet()
	cs.InsertProduct(newTestProduct(t, "p-2", "MLK-2", nil))
	cs.InsertProduct(newTestProduct(t, "p-3", "MLK-1", nil))
	require.Error(t, s.Apply(ctx, cs))

	_, err := s.GetProduct(ctx, "p-2")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStore_UpdateWritesDirtyFieldsAndHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := newTestProduct(t, "p-1", "MLK-1", nil)
	insert(t, s, p)

	now := t0.Add(time.Hour)
	d := domain.ProductDraft{
		Name: p.Name(), Code: p.Code(), BasePrice: domain.MustMoney("15.00"),
		StockCurrent: 4, StockMinimum: p.StockMinimum(), CategoryID: p.CategoryID(), UnitID: p.UnitID(),
	}
	next, err := p.Revise(d, "alice", domain.PriceLimits{}, now)
	require.NoError(t, err)

	cs := contracts.NewChangeSet()
	cs.UpdateProduct(next)
	cs.AppendPriceChange(domain.NewPriceChange("pc-1", next.PriceChange()))
	require.NoError(t, s.Apply(ctx, cs))

	got, err := s.GetProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.StockCurrent())
	assert.True(t, got.BasePrice().Equals(domain.MustMoney("15")))
	assert.True(t, got.UpdatedAt().Equal(now))

	history, err := s.ListPriceHistory(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "alice", history[0].Actor())
	assert.True(t, history[0].OldPrice().Equals(domain.MustMoney("12.50")))
	assert.True(t, history[0].NewPrice().Equals(domain.MustMoney("15.00")))
}

func TestStore_UpdateMissingProduct(t *testing.T) {
	s := openTestStore(t)
	p := newTestProduct(t, "ghost", "G-1", nil)
	d := domain.ProductDraft{
		Name: p.Name(), Code: p.Code(), BasePrice: p.BasePrice(),
		StockCurrent: 1, StockMinimum: 0, CategoryID: p.CategoryID(), UnitID: p.UnitID(),
	}
	next, err := p.Revise(d, "admin", domain.PriceLimits{}, t0)
	require.NoError(t, err)

	cs := contracts.NewChangeSet()
	cs.UpdateProduct(next)
	assert.ErrorIs(t, s.Apply(context.Background(), cs), domain.ErrProductNotFound)
}

func TestStore_DeleteRemovesHistoryKeepsAlerts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := newTestProduct(t, "p-1", "MLK-1", nil)

	cs := contracts.NewChangeSet()
	cs.InsertProduct(p)
	cs.AppendPriceChange(domain.ReconstructPriceChange("pc-1", "p-1", domain.MustMoney("1"), domain.MustMoney("2"), "admin", t0))
	cs.AddAlert(domain.NewAlert("a-1", "p-1", domain.AlertCandidate{
		Kind: domain.AlertLowStock, Severity: domain.SeverityWarning, Description: "low",
	}, "system", t0))
	require.NoError(t, s.Apply(ctx, cs))

	cs = contracts.NewChangeSet()
	cs.DeleteProduct("p-1")
	require.NoError(t, s.Apply(ctx, cs))

	_, err := s.GetProduct(ctx, "p-1")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	history, err := s.ListPriceHistory(ctx, "p-1")
	require.NoError(t, err)
	assert.Empty(t, history)
	alerts, err := s.ListAlertsByProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Len(t, alerts, 1)

	cs = contracts.NewChangeSet()
	cs.DeleteProduct("p-1")
	assert.ErrorIs(t, s.Apply(ctx, cs), domain.ErrProductNotFound)
}

func TestStore_Filter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	today := civil.Date{Year: 2026, Month: 3, Day: 1}
	soon := today.AddDays(3)
	past := today.AddDays(-1)
	prov := "prov-1"

	insert(t, s,
		newTestProduct(t, "p-1", "A", func(d *domain.ProductDraft) { d.ExpirationDate = &soon; d.StockCurrent = 1 }),
		newTestProduct(t, "p-2", "B", func(d *domain.ProductDraft) { d.ExpirationDate = &past; d.ProviderID = &prov }),
		newTestProduct(t, "p-3", "C", func(d *domain.ProductDraft) { d.CategoryID = "cat-2"; d.StockCurrent = 50 }),
	)

	ids := func(ps []*domain.Product) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.ID())
		}
		return out
	}

	all, err := s.Filter(ctx, contracts.ProductFilter{Today: today})
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1", "p-2", "p-3"}, ids(all))

	cat := "cat-1"
	got, err := s.Filter(ctx, contracts.ProductFilter{CategoryID: &cat, Today: today})
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1", "p-2"}, ids(got))

	got, err = s.Filter(ctx, contracts.ProductFilter{ProviderID: &prov, Today: today})
	require.NoError(t, err)
	assert.Equal(t, []string{"p-2"}, ids(got))

	near := domain.ExpirationNearExpiry
	got, err = s.Filter(ctx, contracts.ProductFilter{ExpirationStatus: &near, Today: today})
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1"}, ids(got))

	lo, hi := 5, 20
	got, err = s.Filter(ctx, contracts.ProductFilter{StockMin: &lo, StockMax: &hi, Today: today})
	require.NoError(t, err)
	assert.Equal(t, []string{"p-2"}, ids(got))
}

func TestStore_AlertsDedupAndOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	exists, err := s.ExistsActive(ctx, "p-1", domain.AlertExpired)
	require.NoError(t, err)
	assert.False(t, exists)

	cs := contracts.NewChangeSet()
	cs.AddAlert(domain.NewAlert("a-2", "p-1", domain.AlertCandidate{Kind: domain.AlertExpired, Severity: domain.SeverityCritical, Description: "expired"}, "system", t0.Add(time.Minute)))
	cs.AddAlert(domain.NewAlert("a-1", "p-2", domain.AlertCandidate{Kind: domain.AlertLowStock, Severity: domain.SeverityWarning, Description: "low"}, "admin", t0))
	require.NoError(t, s.Apply(ctx, cs))

	exists, err = s.ExistsActive(ctx, "p-1", domain.AlertExpired)
	require.NoError(t, err)
	assert.True(t, exists)

	all, err := s.ListAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a-1", all[0].ID())
	assert.Equal(t, domain.SeverityCritical, all[1].Severity())
}

func TestStore_ReferenceData(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	c, err := s.GetCategory(ctx, "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "Dairy", c.Name)

	_, err = s.GetCategory(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	_, err = s.GetProvider(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
	_, err = s.GetUnit(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrUnitNotFound)

	cs := contracts.NewChangeSet()
	cs.UpsertCategory(&domain.Category{ID: "cat-1", Name: "Milk & Cheese"})
	require.NoError(t, s.Apply(ctx, cs))

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Bakery", cats[0].Name)
	assert.Equal(t, "Milk & Cheese", cats[1].Name)

	provs, err := s.ListProviders(ctx)
	require.NoError(t, err)
	require.Len(t, provs, 1)
	assert.Equal(t, "555-0100", provs[0].Phone)

	units, err := s.ListUnits(ctx)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "pc", units[0].Abbreviation)
}

func TestStore_EnsureSchemaIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.EnsureSchema(context.Background()))
}

func TestStore_DeduplicatedAlertKindsAreUnique(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	insert(t, s, newTestProduct(t, "p-1", "MLK-1", nil))

	first := contracts.NewChangeSet()
	first.AddAlert(domain.NewAlert("a-1", "p-1", domain.AlertCandidate{Kind: domain.AlertExpired, Severity: domain.SeverityCritical, Description: "expired"}, "admin", t0))
	require.NoError(t, s.Apply(ctx, first))

	second := contracts.NewChangeSet()
	second.AddAlert(domain.NewAlert("a-2", "p-1", domain.AlertCandidate{Kind: domain.AlertPriceVariance, Severity: domain.SeverityWarning, Description: "moved"}, "admin", t0))
	second.AddAlert(domain.NewAlert("a-3", "p-1", domain.AlertCandidate{Kind: domain.AlertExpired, Severity: domain.SeverityCritical, Description: "expired"}, "system", t0))
	err := s.Apply(ctx, second)
	assert.ErrorIs(t, err, domain.ErrAlertAlreadyRaised)
	assert.ErrorIs(t, err, domain.ErrStateConflict)

	// The failed commit wrote nothing.
	alerts, err := s.ListAlertsByProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Len(t, alerts, 1)

	repeated := contracts.NewChangeSet()
	for _, id := range []string{"a-4", "a-5"} {
		repeated.AddAlert(domain.NewAlert(id, "p-1", domain.AlertCandidate{Kind: domain.AlertPriceOutOfRange, Severity: domain.SeverityCritical, Description: "range"}, "admin", t0))
	}
	require.NoError(t, s.Apply(ctx, repeated))
}

func TestStore_NameUniqueWithinCategory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	insert(t, s, newTestProduct(t, "p-1", "MLK-1", func(d *domain.ProductDraft) { d.Name = "Whole Milk" }))

	cs := contracts.NewChangeSet()
	cs.InsertProduct(newTestProduct(t, "p-2", "MLK-2", func(d *domain.ProductDraft) { d.Name = "WHOLE MILK" }))
	err := s.Apply(ctx, cs)
	assert.ErrorIs(t, err, domain.ErrDuplicateProductName)
	assert.ErrorIs(t, err, domain.ErrValidation)

	insert(t, s, newTestProduct(t, "p-3", "MLK-3", func(d *domain.ProductDraft) {
		d.Name = "Whole Milk"
		d.CategoryID = "cat-2"
	}))
}
