package m_product

// Field constants for the products table.
const (
	TableName = "products"

	ColProductID      = "product_id"
	ColName           = "name"
	ColCode           = "code"
	ColDescription    = "description"
	ColBasePrice      = "base_price"
	ColPurchasePrice  = "purchase_price"
	ColStockCurrent   = "stock_current"
	ColStockMinimum   = "stock_minimum"
	ColExpirationDate = "expiration_date"
	ColActive         = "active"
	ColCategoryID     = "category_id"
	ColProviderID     = "provider_id"
	ColUnitID         = "unit_id"
	ColCreatedAt      = "created_at"
	ColUpdatedAt      = "updated_at"

	// IndexByCode enforces code uniqueness.
	IndexByCode = "products_by_code"
)

// Columns lists every column in declaration order, for SELECT lists.
var Columns = []string{
	ColProductID, ColName, ColCode, ColDescription, ColBasePrice, ColPurchasePrice,
	ColStockCurrent, ColStockMinimum, ColExpirationDate, ColActive,
	ColCategoryID, ColProviderID, ColUnitID, ColCreatedAt, ColUpdatedAt,
}
