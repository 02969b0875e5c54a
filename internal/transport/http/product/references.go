package product

import (
	"net/http"

	"github.com/murkotick/stock-alert-service/internal/app/product/dto"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/upsert_reference"
	"github.com/murkotick/stock-alert-service/internal/pkg/httpx"
)

// Reference data is created or renamed with POST; an id in the body selects
// the record to overwrite.

func (h *Handler) upsertCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.commands.Reference.Execute(r.Context(), upsert_reference.Request{
		Kind: upsert_reference.KindCategory, ID: req.ID, Name: req.Name,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, dto.FromCategory(res.Category))
}

func (h *Handler) upsertProvider(w http.ResponseWriter, r *http.Request) {
	var req providerRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.commands.Reference.Execute(r.Context(), upsert_reference.Request{
		Kind: upsert_reference.KindProvider, ID: req.ID, Name: req.Name, Phone: req.Phone, Email: req.Email,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, dto.FromProvider(res.Provider))
}

func (h *Handler) upsertUnit(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.commands.Reference.Execute(r.Context(), upsert_reference.Request{
		Kind: upsert_reference.KindUnit, ID: req.ID, Name: req.Name, Abbreviation: req.Abbreviation,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, dto.FromUnit(res.Unit))
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	cs, err := h.queries.References.Categories(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cs)
}

func (h *Handler) listProviders(w http.ResponseWriter, r *http.Request) {
	ps, err := h.queries.References.Providers(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ps)
}

func (h *Handler) listUnits(w http.ResponseWriter, r *http.Request) {
	us, err := h.queries.References.Units(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, us)
}
