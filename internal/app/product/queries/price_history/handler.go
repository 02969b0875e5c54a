package price_history

import (
	"context"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/dto"
)

type Handler struct {
	products contracts.ProductStore
	history  contracts.PriceHistoryStore
}

func NewHandler(products contracts.ProductStore, history contracts.PriceHistoryStore) *Handler {
	return &Handler{products: products, history: history}
}

// Execute returns the price ledger of an existing product, oldest first.
func (h *Handler) Execute(ctx context.Context, productID string) ([]*dto.PriceChangeDTO, error) {
	if _, err := h.products.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	cs, err := h.history.ListPriceHistory(ctx, productID)
	if err != nil {
		return nil, err
	}
	return dto.FromPriceChanges(cs), nil
}
