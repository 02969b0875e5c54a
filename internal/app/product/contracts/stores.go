package contracts

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

// ProductStore is the read side of product persistence.
// GetProduct returns domain.ErrProductNotFound for unknown ids; the Find
// methods return (nil, nil) when nothing matches.
type ProductStore interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	FindByCode(ctx context.Context, code string) (*domain.Product, error)
	FindByNameAndCategory(ctx context.Context, name, categoryID string) (*domain.Product, error)
	ListAll(ctx context.Context) ([]*domain.Product, error)
	Filter(ctx context.Context, f ProductFilter) ([]*domain.Product, error)
}

// CategoryStore resolves categories. GetCategory returns domain.ErrCategoryNotFound when absent.
type CategoryStore interface {
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

// ProviderStore resolves providers. GetProvider returns domain.ErrProviderNotFound when absent.
type ProviderStore interface {
	GetProvider(ctx context.Context, id string) (*domain.Provider, error)
	ListProviders(ctx context.Context) ([]*domain.Provider, error)
}

// UnitStore resolves units of measure. GetUnit returns domain.ErrUnitNotFound when absent.
type UnitStore interface {
	GetUnit(ctx context.Context, id string) (*domain.Unit, error)
	ListUnits(ctx context.Context) ([]*domain.Unit, error)
}

// AlertStore reads alerts. ExistsActive backs the per-(product, kind) dedup:
// once an alert of a kind exists for a product, that kind is not raised again.
type AlertStore interface {
	ExistsActive(ctx context.Context, productID string, kind domain.AlertKind) (bool, error)
	ListAlerts(ctx context.Context) ([]*domain.Alert, error)
	ListAlertsByProduct(ctx context.Context, productID string) ([]*domain.Alert, error)
}

// PriceHistoryStore reads the price ledger, oldest entry first.
type PriceHistoryStore interface {
	ListPriceHistory(ctx context.Context, productID string) ([]*domain.PriceChange, error)
}

// Store is the full persistence surface a backend provides.
type Store interface {
	ProductStore
	CategoryStore
	ProviderStore
	UnitStore
	AlertStore
	PriceHistoryStore
	Committer
	Close() error
}

// ProductFilter narrows a product listing. Nil fields do not constrain.
// Expiration status is computed against Today, never stored.
type ProductFilter struct {
	CategoryID       *string
	ProviderID       *string
	ExpirationStatus *domain.ExpirationStatus
	StockMin         *int
	StockMax         *int
	Today            civil.Date
}

// MatchesExpiration applies the expiration-status criterion, which backends
// evaluate after fetching rows.
func (f ProductFilter) MatchesExpiration(p *domain.Product) bool {
	if f.ExpirationStatus == nil {
		return true
	}
	status, _ := p.ExpirationStatus(f.Today)
	return status == *f.ExpirationStatus
}
