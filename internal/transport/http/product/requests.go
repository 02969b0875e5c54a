package product

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

// productRequest is the body of create and update. Prices accept JSON
// numbers or strings.
type productRequest struct {
	Name           string           `json:"name" validate:"required,max=255"`
	Code           string           `json:"code" validate:"required,max=64"`
	Description    string           `json:"description" validate:"max=1000"`
	BasePrice      *decimal.Decimal `json:"base_price" validate:"required"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price"`
	StockCurrent   *int             `json:"stock_current" validate:"required,min=0"`
	StockMinimum   *int             `json:"stock_minimum" validate:"required,min=0"`
	ExpirationDate *string          `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	CategoryID     string           `json:"category_id" validate:"required,max=36"`
	ProviderID     *string          `json:"provider_id" validate:"omitempty,min=1,max=36"`
	UnitID         string           `json:"unit_id" validate:"required,max=36"`
}

type activeRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type categoryRequest struct {
	ID   string `json:"id" validate:"max=36"`
	Name string `json:"name" validate:"required,max=255"`
}

type providerRequest struct {
	ID    string `json:"id" validate:"max=36"`
	Name  string `json:"name" validate:"required,max=255"`
	Phone string `json:"phone" validate:"max=64"`
	Email string `json:"email" validate:"omitempty,email"`
}

type unitRequest struct {
	ID           string `json:"id" validate:"max=36"`
	Name         string `json:"name" validate:"required,max=255"`
	Abbreviation string `json:"abbreviation" validate:"max=16"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors flattens validator output into json-field -> message.
func fieldErrors(err error) map[string]string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil
	}
	out := make(map[string]string, len(ves))
	for _, fe := range ves {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "is required"
		case "max":
			out[fe.Field()] = "must be at most " + fe.Param() + " characters"
		case "min":
			out[fe.Field()] = "must be at least " + fe.Param()
		case "datetime":
			out[fe.Field()] = "must be a date in YYYY-MM-DD format"
		case "email":
			out[fe.Field()] = "must be a valid email address"
		default:
			out[fe.Field()] = "is invalid"
		}
	}
	return out
}

func (req productRequest) toDraft() (domain.ProductDraft, error) {
	d := domain.ProductDraft{
		Name:         req.Name,
		Code:         req.Code,
		Description:  req.Description,
		BasePrice:    domain.MoneyFromDecimal(*req.BasePrice),
		StockCurrent: *req.StockCurrent,
		StockMinimum: *req.StockMinimum,
		CategoryID:   req.CategoryID,
		ProviderID:   req.ProviderID,
		UnitID:       req.UnitID,
	}
	if req.PurchasePrice != nil {
		d.PurchasePrice = domain.MoneyFromDecimal(*req.PurchasePrice)
	}
	if req.ExpirationDate != nil {
		date, err := domain.ParseDate(*req.ExpirationDate)
		if err != nil {
			return domain.ProductDraft{}, err
		}
		d.ExpirationDate = &date
	}
	return d, nil
}
