package update_product

import (
	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

func changeSetFor(p *domain.Product) *contracts.ChangeSet {
	cs := contracts.NewChangeSet()
	cs.UpdateProduct(p)
	return cs
}
