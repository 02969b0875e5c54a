package list_products

import (
	"context"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/dto"
	"github.com/murkotick/stock-alert-service/internal/pkg/clock"
)

// Query narrows the listing. Nil fields do not constrain.
type Query struct {
	CategoryID       *string
	ProviderID       *string
	ExpirationStatus *domain.ExpirationStatus
	StockMin         *int
	StockMax         *int
}

type Handler struct {
	products contracts.ProductStore
	clock    clock.Clock
}

func NewHandler(products contracts.ProductStore, clk clock.Clock) *Handler {
	return &Handler{products: products, clock: clk}
}

func (h *Handler) Execute(ctx context.Context, q Query) ([]*dto.ProductDTO, error) {
	if q.StockMin != nil && q.StockMax != nil && *q.StockMin > *q.StockMax {
		return nil, domain.Validationf("stock_min %d exceeds stock_max %d", *q.StockMin, *q.StockMax)
	}

	today := clock.Today(h.clock)
	products, err := h.products.Filter(ctx, contracts.ProductFilter{
		CategoryID:       q.CategoryID,
		ProviderID:       q.ProviderID,
		ExpirationStatus: q.ExpirationStatus,
		StockMin:         q.StockMin,
		StockMax:         q.StockMax,
		Today:            today,
	})
	if err != nil {
		return nil, err
	}
	return dto.FromProducts(products, today), nil
}
