package get_product

import (
	"context"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/dto"
	"github.com/murkotick/stock-alert-service/internal/pkg/clock"
)

type Handler struct {
	products contracts.ProductStore
	clock    clock.Clock
}

func NewHandler(products contracts.ProductStore, clk clock.Clock) *Handler {
	return &Handler{products: products, clock: clk}
}

// Execute loads one product; the expiration status reflects today.
func (h *Handler) Execute(ctx context.Context, productID string) (*dto.ProductDTO, error) {
	p, err := h.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return dto.FromProduct(p, clock.Today(h.clock)), nil
}
