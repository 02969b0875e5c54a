package dto

// ProductDTO contains full product fields returned by read queries.
// Prices are decimal strings with two fractional digits; timestamps are RFC3339.
// ExpirationStatus and DaysRemaining are computed at read time.
type ProductDTO struct {
	ProductID        string  `json:"id"`
	Name             string  `json:"name"`
	Code             string  `json:"code"`
	Description      *string `json:"description,omitempty"`
	BasePrice        string  `json:"base_price"`
	PurchasePrice    *string `json:"purchase_price,omitempty"`
	StockCurrent     int     `json:"stock_current"`
	StockMinimum     int     `json:"stock_minimum"`
	ExpirationDate   *string `json:"expiration_date,omitempty"`
	ExpirationStatus string  `json:"expiration_status"`
	DaysRemaining    *int    `json:"days_remaining,omitempty"`
	Active           bool    `json:"active"`
	CategoryID       string  `json:"category_id"`
	ProviderID       *string `json:"provider_id,omitempty"`
	UnitID           string  `json:"unit_id"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// AlertDTO is one raised alert.
type AlertDTO struct {
	AlertID     string `json:"id"`
	ProductID   string `json:"product_id"`
	Kind        string `json:"kind"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Actor       string `json:"actor"`
	CreatedAt   string `json:"created_at"`
}

// PriceChangeDTO is one entry of a product's price history.
type PriceChangeDTO struct {
	ChangeID  string `json:"id"`
	ProductID string `json:"product_id"`
	OldPrice  string `json:"old_price"`
	NewPrice  string `json:"new_price"`
	Actor     string `json:"actor"`
	ChangedAt string `json:"changed_at"`
}

// ProductWithAlertsDTO answers create and update: the stored product plus the
// alerts the operation raised.
type ProductWithAlertsDTO struct {
	Product *ProductDTO `json:"product"`
	Alerts  []*AlertDTO `json:"alerts"`
}

type CategoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProviderDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type UnitDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
}
