package shared

import "github.com/murkotick/stock-alert-service/internal/app/product/domain"

// Result is returned by the create and update usecases: the stored product
// and the alerts the operation raised, price rules first.
type Result struct {
	Product *domain.Product
	Alerts  []*domain.Alert
}
