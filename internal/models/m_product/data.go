package m_product

import (
	"math/big"
	"strings"
	"time"

	"cloud.google.com/go/spanner"
)

// Row mirrors one products row as read through spanner.Row.ToStruct.
type Row struct {
	ProductID      string              `spanner:"product_id"`
	Name           string              `spanner:"name"`
	Code           string              `spanner:"code"`
	Description    spanner.NullString  `spanner:"description"`
	BasePrice      big.Rat             `spanner:"base_price"`
	PurchasePrice  spanner.NullNumeric `spanner:"purchase_price"`
	StockCurrent   int64               `spanner:"stock_current"`
	StockMinimum   int64               `spanner:"stock_minimum"`
	ExpirationDate spanner.NullDate    `spanner:"expiration_date"`
	Active         bool                `spanner:"active"`
	CategoryID     string              `spanner:"category_id"`
	ProviderID     spanner.NullString  `spanner:"provider_id"`
	UnitID         string              `spanner:"unit_id"`
	CreatedAt      time.Time           `spanner:"created_at"`
	UpdatedAt      time.Time           `spanner:"updated_at"`
}

// SelectList returns the column list for queries, optionally table-qualified.
func SelectList(alias string) string {
	if alias == "" {
		return strings.Join(Columns, ", ")
	}
	cols := make([]string, len(Columns))
	for i, c := range Columns {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// InsertMutation builds a spanner.Insert mutation for a product using a map of values.
// expected keys are the column names declared in fields.go
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation builds a spanner.Update mutation for a product.
// The values map should NOT include the product_id key.
func UpdateMutation(productID string, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColProductID}
	vals := []interface{}{productID}

	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}

	return spanner.Update(TableName, cols, vals)
}

// DeleteMutation removes the product row; interleaved price history goes with it.
func DeleteMutation(productID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID})
}

// BuildInsertMap prepares the canonical fields for insertion.
func BuildInsertMap(r Row) map[string]interface{} {
	return map[string]interface{}{
		ColProductID:      r.ProductID,
		ColName:           r.Name,
		ColCode:           r.Code,
		ColDescription:    r.Description,
		ColBasePrice:      &r.BasePrice,
		ColPurchasePrice:  r.PurchasePrice,
		ColStockCurrent:   r.StockCurrent,
		ColStockMinimum:   r.StockMinimum,
		ColExpirationDate: r.ExpirationDate,
		ColActive:         r.Active,
		ColCategoryID:     r.CategoryID,
		ColProviderID:     r.ProviderID,
		ColUnitID:         r.UnitID,
		ColCreatedAt:      r.CreatedAt,
		ColUpdatedAt:      r.UpdatedAt,
	}
}
