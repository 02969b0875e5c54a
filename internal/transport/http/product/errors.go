package product

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/pkg/httpx"
)

// mapError translates domain errors into a status code and problem title.
// Unknown errors become 500.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Timeout"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "Canceled"

	// Duplicates are validation errors in the domain but conflict with stored state.
	case errors.Is(err, domain.ErrDuplicateProductCode),
		errors.Is(err, domain.ErrDuplicateProductName):
		return http.StatusConflict, "Duplicate"

	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "Validation Failed"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not Found"
	case errors.Is(err, domain.ErrStateConflict):
		return http.StatusConflict, "Conflict"
	}
	return http.StatusInternalServerError, "Internal Error"
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, title := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		httpx.Problem(w, status, title, "")
		return
	}
	httpx.Problem(w, status, title, err.Error())
}
