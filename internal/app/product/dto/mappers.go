package dto

import (
	"cloud.google.com/go/civil"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/utils"
)

// FromProduct renders p as seen on today.
func FromProduct(p *domain.Product, today civil.Date) *ProductDTO {
	status, days := p.ExpirationStatus(today)
	out := &ProductDTO{
		ProductID:        p.ID(),
		Name:             p.Name(),
		Code:             p.Code(),
		BasePrice:        p.BasePrice().String(),
		StockCurrent:     p.StockCurrent(),
		StockMinimum:     p.StockMinimum(),
		ExpirationStatus: string(status),
		Active:           p.IsActive(),
		CategoryID:       p.CategoryID(),
		ProviderID:       p.ProviderID(),
		UnitID:           p.UnitID(),
		CreatedAt:        utils.FormatTime(p.CreatedAt()),
		UpdatedAt:        utils.FormatTime(p.UpdatedAt()),
	}
	if d := p.Description(); d != "" {
		out.Description = &d
	}
	if pp := p.PurchasePrice(); pp != nil {
		s := pp.String()
		out.PurchasePrice = &s
	}
	if exp := p.ExpirationDate(); exp != nil {
		out.ExpirationDate = utils.FormatDatePtr(exp)
		out.DaysRemaining = &days
	}
	return out
}

func FromProducts(ps []*domain.Product, today civil.Date) []*ProductDTO {
	out := make([]*ProductDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProduct(p, today))
	}
	return out
}

func FromAlert(a *domain.Alert) *AlertDTO {
	return &AlertDTO{
		AlertID:     a.ID(),
		ProductID:   a.ProductID(),
		Kind:        string(a.Kind()),
		Severity:    string(a.Severity()),
		Description: a.Description(),
		Actor:       a.Actor(),
		CreatedAt:   utils.FormatTime(a.CreatedAt()),
	}
}

func FromAlerts(as []*domain.Alert) []*AlertDTO {
	out := make([]*AlertDTO, 0, len(as))
	for _, a := range as {
		out = append(out, FromAlert(a))
	}
	return out
}

func FromPriceChanges(cs []*domain.PriceChange) []*PriceChangeDTO {
	out := make([]*PriceChangeDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, &PriceChangeDTO{
			ChangeID:  c.ID(),
			ProductID: c.ProductID(),
			OldPrice:  c.OldPrice().String(),
			NewPrice:  c.NewPrice().String(),
			Actor:     c.Actor(),
			ChangedAt: utils.FormatTime(c.ChangedAt()),
		})
	}
	return out
}

func FromCategory(c *domain.Category) *CategoryDTO {
	return &CategoryDTO{ID: c.ID, Name: c.Name}
}

func FromProvider(p *domain.Provider) *ProviderDTO {
	return &ProviderDTO{ID: p.ID, Name: p.Name, Phone: p.Phone, Email: p.Email}
}

func FromUnit(u *domain.Unit) *UnitDTO {
	return &UnitDTO{ID: u.ID, Name: u.Name, Abbreviation: u.Abbreviation}
}
