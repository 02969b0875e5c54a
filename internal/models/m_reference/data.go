package m_reference

import "cloud.google.com/go/spanner"

// CategoryRow, ProviderRow and UnitRow carry both spanner and db tags; the
// SQLite store scans into the same shapes.
type CategoryRow struct {
	CategoryID string `spanner:"category_id" db:"category_id"`
	Name       string `spanner:"name" db:"name"`
}

type ProviderRow struct {
	ProviderID string `spanner:"provider_id" db:"provider_id"`
	Name       string `spanner:"name" db:"name"`
	Phone      string `spanner:"phone" db:"phone"`
	Email      string `spanner:"email" db:"email"`
}

type UnitRow struct {
	UnitID       string `spanner:"unit_id" db:"unit_id"`
	Name         string `spanner:"name" db:"name"`
	Abbreviation string `spanner:"abbreviation" db:"abbreviation"`
}

func UpsertCategoryMutation(r CategoryRow) *spanner.Mutation {
	return spanner.InsertOrUpdate(CategoriesTable, CategoryColumns, []interface{}{r.CategoryID, r.Name})
}

func UpsertProviderMutation(r ProviderRow) *spanner.Mutation {
	return spanner.InsertOrUpdate(ProvidersTable, ProviderColumns, []interface{}{r.ProviderID, r.Name, r.Phone, r.Email})
}

func UpsertUnitMutation(r UnitRow) *spanner.Mutation {
	return spanner.InsertOrUpdate(UnitsTable, UnitColumns, []interface{}{r.UnitID, r.Name, r.Abbreviation})
}
