// Package product is the HTTP adapter of the product inventory.
package product

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/dto"
	"github.com/murkotick/stock-alert-service/internal/app/product/queries/get_product"
	"github.com/murkotick/stock-alert-service/internal/app/product/queries/list_alerts"
	"github.com/murkotick/stock-alert-service/internal/app/product/queries/list_products"
	"github.com/murkotick/stock-alert-service/internal/app/product/queries/list_references"
	"github.com/murkotick/stock-alert-service/internal/app/product/queries/price_history"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/change_product_state"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/delete_product"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/shared"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/update_product"
	"github.com/murkotick/stock-alert-service/internal/app/product/usecases/upsert_reference"
	"github.com/murkotick/stock-alert-service/internal/pkg/clock"
	"github.com/murkotick/stock-alert-service/internal/pkg/httpx"
	"github.com/murkotick/stock-alert-service/internal/pkg/logger"
)

// ActorHeader names the acting user. Requests without it act as DefaultActor.
const (
	ActorHeader  = "X-User"
	DefaultActor = "admin"

	maxActorLength = 128
)

// Commands groups write interactors.
// Keep transport layer depending on application layer only.
type Commands struct {
	Create    *create_product.Interactor
	Update    *update_product.Interactor
	SetActive *change_product_state.Interactor
	Delete    *delete_product.Interactor
	Reference *upsert_reference.Interactor
}

// Queries groups read handlers.
type Queries struct {
	Get        *get_product.Handler
	List       *list_products.Handler
	Alerts     *list_alerts.Handler
	History    *price_history.Handler
	References *list_references.Handler
}

// Handler is a thin HTTP transport adapter.
// It validates input, maps JSON <-> application DTOs and delegates to CQRS handlers.
type Handler struct {
	commands  Commands
	queries   Queries
	clock     clock.Clock
	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(cmd Commands, qry Queries, clk clock.Clock, log *zap.Logger) *Handler {
	return &Handler{
		commands:  cmd,
		queries:   qry,
		clock:     clk,
		validator: newValidator(),
		logger:    logger.OrNop(log),
	}
}

// MountRoutes registers the API under r.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.createProduct)
		r.Get("/", h.listProducts)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getProduct)
			r.Put("/", h.updateProduct)
			r.Delete("/", h.deleteProduct)
			r.Put("/active", h.setActive)
			r.Get("/alerts", h.productAlerts)
			r.Get("/price-history", h.priceHistory)
		})
	})
	r.Get("/alerts", h.allAlerts)

	r.Post("/categories", h.upsertCategory)
	r.Get("/categories", h.listCategories)
	r.Post("/providers", h.upsertProvider)
	r.Get("/providers", h.listProviders)
	r.Post("/units", h.upsertUnit)
	r.Get("/units", h.listUnits)
}

// actor resolves the acting user; it writes the 400 itself when the header is too long.
func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (string, bool) {
	a := strings.TrimSpace(r.Header.Get(ActorHeader))
	if a == "" {
		return DefaultActor, true
	}
	if utf8.RuneCountInString(a) > maxActorLength {
		httpx.WriteProblem(w, httpx.ProblemDetail{
			Title:  "Validation Failed",
			Status: http.StatusBadRequest,
			Errors: map[string]string{ActorHeader: fmt.Sprintf("must be at most %d characters", maxActorLength)},
		})
		return "", false
	}
	return a, true
}

// decode reads and validates a request body; it writes the 400 itself and
// reports false when the body is unusable.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Request", err.Error())
		return false
	}
	if err := h.validator.Struct(target); err != nil {
		httpx.WriteProblem(w, httpx.ProblemDetail{
			Title:  "Validation Failed",
			Status: http.StatusBadRequest,
			Errors: fieldErrors(err),
		})
		return false
	}
	return true
}

func (h *Handler) withAlerts(res *shared.Result) *dto.ProductWithAlertsDTO {
	return &dto.ProductWithAlertsDTO{
		Product: dto.FromProduct(res.Product, clock.Today(h.clock)),
		Alerts:  dto.FromAlerts(res.Alerts),
	}
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !h.decode(w, r, &req) {
		return
	}
	draft, err := req.toDraft()
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	who, ok := h.actor(w, r)
	if !ok {
		return
	}
	res, err := h.commands.Create.Execute(r.Context(), create_product.Request{Draft: draft, Actor: who})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, h.withAlerts(res))
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !h.decode(w, r, &req) {
		return
	}
	draft, err := req.toDraft()
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	who, ok := h.actor(w, r)
	if !ok {
		return
	}
	res, err := h.commands.Update.Execute(r.Context(), update_product.Request{
		ProductID: chi.URLParam(r, "id"),
		Draft:     draft,
		Actor:     who,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.withAlerts(res))
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request) {
	var req activeRequest
	if !h.decode(w, r, &req) {
		return
	}
	p, err := h.commands.SetActive.Execute(r.Context(), change_product_state.Request{
		ProductID: chi.URLParam(r, "id"),
		Active:    *req.Active,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dto.FromProduct(p, clock.Today(h.clock)))
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.commands.Delete.Execute(r.Context(), delete_product.Request{ProductID: chi.URLParam(r, "id")}); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.queries.Get.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ps, err := h.queries.List.Execute(r.Context(), q)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ps)
}

func parseListQuery(r *http.Request) (list_products.Query, error) {
	values := r.URL.Query()
	var q list_products.Query

	optString := func(key string) *string {
		if v := strings.TrimSpace(values.Get(key)); v != "" {
			return &v
		}
		return nil
	}
	optInt := func(key string) (*int, error) {
		v := strings.TrimSpace(values.Get(key))
		if v == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, domain.Validationf("%s must be an integer", key)
		}
		return &n, nil
	}

	q.CategoryID = optString("category_id")
	q.ProviderID = optString("provider_id")
	if s := optString("expiration_status"); s != nil {
		status, err := domain.ParseExpirationStatus(*s)
		if err != nil {
			return q, err
		}
		q.ExpirationStatus = &status
	}
	var err error
	if q.StockMin, err = optInt("stock_min"); err != nil {
		return q, err
	}
	if q.StockMax, err = optInt("stock_max"); err != nil {
		return q, err
	}
	return q, nil
}

func (h *Handler) productAlerts(w http.ResponseWriter, r *http.Request) {
	as, err := h.queries.Alerts.ByProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, as)
}

func (h *Handler) allAlerts(w http.ResponseWriter, r *http.Request) {
	as, err := h.queries.Alerts.All(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, as)
}

func (h *Handler) priceHistory(w http.ResponseWriter, r *http.Request) {
	cs, err := h.queries.History.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cs)
}
