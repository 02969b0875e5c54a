package upsert_reference

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/producttest"
)

func TestUpsert_CreatesWithGeneratedID(t *testing.T) {
	store := producttest.NewStore(t)
	it := NewInteractor(store)
	ctx := context.Background()

	res, err := it.Execute(ctx, Request{Kind: KindProvider, Name: " Dairy Farm ", Phone: "555-0100", Email: "ops@farm.test"})
	require.NoError(t, err)
	require.NotNil(t, res.Provider)
	assert.NotEmpty(t, res.Provider.ID)
	assert.Equal(t, "Dairy Farm", res.Provider.Name)

	got, err := store.GetProvider(ctx, res.Provider.ID)
	require.NoError(t, err)
	assert.Equal(t, "ops@farm.test", got.Email)
}

func TestUpsert_RenamesExisting(t *testing.T) {
	store := producttest.NewStore(t)
	it := NewInteractor(store)
	ctx := context.Background()

	res, err := it.Execute(ctx, Request{Kind: KindCategory, ID: producttest.CategoryDairy, Name: "Milk & Cheese"})
	require.NoError(t, err)
	assert.Equal(t, producttest.CategoryDairy, res.Category.ID)

	got, err := store.GetCategory(ctx, producttest.CategoryDairy)
	require.NoError(t, err)
	assert.Equal(t, "Milk & Cheese", got.Name)

	cats, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

func TestUpsert_Unit(t *testing.T) {
	store := producttest.NewStore(t)
	res, err := NewInteractor(store).Execute(context.Background(), Request{Kind: KindUnit, ID: "unit-kg", Name: "Kilogram", Abbreviation: "kg"})
	require.NoError(t, err)
	assert.Equal(t, "kg", res.Unit.Abbreviation)
}

func TestUpsert_Invalid(t *testing.T) {
	store := producttest.NewStore(t)
	it := NewInteractor(store)

	_, err := it.Execute(context.Background(), Request{Kind: KindUnit, Name: "  "})
	assert.ErrorIs(t, err, domain.ErrEmptyReferenceName)

	_, err = it.Execute(context.Background(), Request{Kind: "shelf", Name: "Top"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
