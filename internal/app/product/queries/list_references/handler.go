package list_references

import (
	"context"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/dto"
)

type Handler struct {
	categories contracts.CategoryStore
	providers  contracts.ProviderStore
	units      contracts.UnitStore
}

func NewHandler(categories contracts.CategoryStore, providers contracts.ProviderStore, units contracts.UnitStore) *Handler {
	return &Handler{categories: categories, providers: providers, units: units}
}

func (h *Handler) Categories(ctx context.Context) ([]*dto.CategoryDTO, error) {
	cs, err := h.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, dto.FromCategory(c))
	}
	return out, nil
}

func (h *Handler) Providers(ctx context.Context) ([]*dto.ProviderDTO, error) {
	ps, err := h.providers.ListProviders(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProviderDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, dto.FromProvider(p))
	}
	return out, nil
}

func (h *Handler) Units(ctx context.Context) ([]*dto.UnitDTO, error) {
	us, err := h.units.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UnitDTO, 0, len(us))
	for _, u := range us {
		out = append(out, dto.FromUnit(u))
	}
	return out, nil
}
