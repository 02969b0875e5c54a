package sqlitestore

import (
	"database/sql"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/models/m_alert"
	"github.com/murkotick/stock-alert-service/internal/models/m_price_change"
	"github.com/murkotick/stock-alert-service/internal/models/m_product"
)

// timeLayout is fixed width so TEXT timestamps sort chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

type productRow struct {
	ProductID      string         `db:"product_id"`
	Name           string         `db:"name"`
	Code           string         `db:"code"`
	Description    sql.NullString `db:"description"`
	BasePrice      string         `db:"base_price"`
	PurchasePrice  sql.NullString `db:"purchase_price"`
	StockCurrent   int            `db:"stock_current"`
	StockMinimum   int            `db:"stock_minimum"`
	ExpirationDate sql.NullString `db:"expiration_date"`
	Active         bool           `db:"active"`
	CategoryID     string         `db:"category_id"`
	ProviderID     sql.NullString `db:"provider_id"`
	UnitID         string         `db:"unit_id"`
	CreatedAt      string         `db:"created_at"`
	UpdatedAt      string         `db:"updated_at"`
}

var productSelect = "SELECT " + m_product.SelectList("") + " FROM " + m_product.TableName

func (r productRow) toDomain() (*domain.Product, error) {
	s := domain.ProductSnapshot{
		ID:           r.ProductID,
		Name:         r.Name,
		Code:         r.Code,
		Description:  r.Description.String,
		StockCurrent: r.StockCurrent,
		StockMinimum: r.StockMinimum,
		Active:       r.Active,
		CategoryID:   r.CategoryID,
		UnitID:       r.UnitID,
	}
	var err error
	if s.BasePrice, err = domain.NewMoneyFromDecimal(r.BasePrice); err != nil {
		return nil, fmt.Errorf("decode product %s base_price: %w", r.ProductID, err)
	}
	if r.PurchasePrice.Valid {
		if s.PurchasePrice, err = domain.NewMoneyFromDecimal(r.PurchasePrice.String); err != nil {
			return nil, fmt.Errorf("decode product %s purchase_price: %w", r.ProductID, err)
		}
	}
	if r.ExpirationDate.Valid {
		d, err := civil.ParseDate(r.ExpirationDate.String)
		if err != nil {
			return nil, fmt.Errorf("decode product %s expiration_date: %w", r.ProductID, err)
		}
		s.ExpirationDate = &d
	}
	if r.ProviderID.Valid {
		v := r.ProviderID.String
		s.ProviderID = &v
	}
	if s.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return nil, fmt.Errorf("decode product %s created_at: %w", r.ProductID, err)
	}
	if s.UpdatedAt, err = parseTime(r.UpdatedAt); err != nil {
		return nil, fmt.Errorf("decode product %s updated_at: %w", r.ProductID, err)
	}
	return domain.ReconstructProduct(s), nil
}

func productInsertArgs(p *domain.Product) []interface{} {
	return []interface{}{
		p.ID(), p.Name(), p.Code(), nullString(p.Description()), p.BasePrice().Decimal().String(),
		nullMoney(p.PurchasePrice()), p.StockCurrent(), p.StockMinimum(), nullDate(p.ExpirationDate()),
		p.IsActive(), p.CategoryID(), nullStringPtr(p.ProviderID()), p.UnitID(),
		formatTime(p.CreatedAt()), formatTime(p.UpdatedAt()),
	}
}

// productUpdateValue maps a dirty domain field to its column and SQLite value.
func productUpdateValue(p *domain.Product, field string) (string, interface{}, bool) {
	switch field {
	case domain.FieldName:
		return m_product.ColName, p.Name(), true
	case domain.FieldCode:
		return m_product.ColCode, p.Code(), true
	case domain.FieldDescription:
		return m_product.ColDescription, nullString(p.Description()), true
	case domain.FieldBasePrice:
		return m_product.ColBasePrice, p.BasePrice().Decimal().String(), true
	case domain.FieldPurchasePrice:
		return m_product.ColPurchasePrice, nullMoney(p.PurchasePrice()), true
	case domain.FieldStockCurrent:
		return m_product.ColStockCurrent, p.StockCurrent(), true
	case domain.FieldStockMinimum:
		return m_product.ColStockMinimum, p.StockMinimum(), true
	case domain.FieldExpirationDate:
		return m_product.ColExpirationDate, nullDate(p.ExpirationDate()), true
	case domain.FieldActive:
		return m_product.ColActive, p.IsActive(), true
	case domain.FieldCategory:
		return m_product.ColCategoryID, p.CategoryID(), true
	case domain.FieldProvider:
		return m_product.ColProviderID, nullStringPtr(p.ProviderID()), true
	case domain.FieldUnit:
		return m_product.ColUnitID, p.UnitID(), true
	case domain.FieldUpdatedAt:
		return m_product.ColUpdatedAt, formatTime(p.UpdatedAt()), true
	}
	return "", nil, false
}

type alertRow struct {
	AlertID     string `db:"alert_id"`
	ProductID   string `db:"product_id"`
	Kind        string `db:"kind"`
	Severity    string `db:"severity"`
	Description string `db:"description"`
	Actor       string `db:"actor"`
	CreatedAt   string `db:"created_at"`
}

var alertSelect = "SELECT " + m_alert.SelectList() + " FROM " + m_alert.TableName

func (r alertRow) toDomain() (*domain.Alert, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("decode alert %s created_at: %w", r.AlertID, err)
	}
	return domain.ReconstructAlert(r.AlertID, r.ProductID, domain.AlertKind(r.Kind),
		domain.Severity(r.Severity), r.Description, r.Actor, created), nil
}

type priceChangeRow struct {
	ProductID string `db:"product_id"`
	ChangeID  string `db:"change_id"`
	OldPrice  string `db:"old_price"`
	NewPrice  string `db:"new_price"`
	Actor     string `db:"actor"`
	ChangedAt string `db:"changed_at"`
}

var priceChangeSelect = "SELECT " + m_price_change.SelectList() + " FROM " + m_price_change.TableName

func (r priceChangeRow) toDomain() (*domain.PriceChange, error) {
	oldPrice, err := domain.NewMoneyFromDecimal(r.OldPrice)
	if err != nil {
		return nil, fmt.Errorf("decode price change %s old_price: %w", r.ChangeID, err)
	}
	newPrice, err := domain.NewMoneyFromDecimal(r.NewPrice)
	if err != nil {
		return nil, fmt.Errorf("decode price change %s new_price: %w", r.ChangeID, err)
	}
	changed, err := parseTime(r.ChangedAt)
	if err != nil {
		return nil, fmt.Errorf("decode price change %s changed_at: %w", r.ChangeID, err)
	}
	return domain.ReconstructPriceChange(r.ChangeID, r.ProductID, oldPrice, newPrice, r.Actor, changed), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullMoney(m *domain.Money) sql.NullString {
	if m == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: m.Decimal().String(), Valid: true}
}

func nullDate(d *civil.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}
