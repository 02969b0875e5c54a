package list_alerts

import (
	"context"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/dto"
)

type Handler struct {
	alerts contracts.AlertStore
}

func NewHandler(alerts contracts.AlertStore) *Handler {
	return &Handler{alerts: alerts}
}

// All returns every alert, oldest first.
func (h *Handler) All(ctx context.Context) ([]*dto.AlertDTO, error) {
	as, err := h.alerts.ListAlerts(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromAlerts(as), nil
}

// ByProduct returns the alerts of one product. Alerts of deleted products are
// still returned, so the product is not required to exist.
func (h *Handler) ByProduct(ctx context.Context, productID string) ([]*dto.AlertDTO, error) {
	as, err := h.alerts.ListAlertsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return dto.FromAlerts(as), nil
}
