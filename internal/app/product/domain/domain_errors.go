package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every sentinel below matches exactly one of these with errors.Is,
// so callers can branch on the kind without enumerating individual errors.
var (
	// ErrValidation marks input that violates a field or uniqueness constraint.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup by identifier that matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrStateConflict marks a request that is illegal for the product's current state.
	ErrStateConflict = errors.New("state conflict")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.kind }

func validationError(msg string) error { return &kindError{kind: ErrValidation, msg: msg} }

func notFoundError(msg string) error { return &kindError{kind: ErrNotFound, msg: msg} }

func conflictError(msg string) error { return &kindError{kind: ErrStateConflict, msg: msg} }

// Validationf builds an ad-hoc validation error.
func Validationf(format string, args ...any) error {
	return validationError(fmt.Sprintf(format, args...))
}

// Domain errors for Product validation
var (
	// ErrEmptyProductName indicates an attempt to create/update a product with an empty name.
	ErrEmptyProductName = validationError("product name cannot be empty")

	// ErrProductNameTooLong indicates the product name exceeds maximum length.
	ErrProductNameTooLong = validationError("product name exceeds maximum length of 255 characters")

	// ErrEmptyProductCode indicates a missing product code.
	ErrEmptyProductCode = validationError("product code cannot be empty")

	// ErrProductCodeTooLong indicates the product code exceeds maximum length.
	ErrProductCodeTooLong = validationError("product code exceeds maximum length of 64 characters")

	// ErrProductDescriptionTooLong indicates the product description exceeds maximum length.
	ErrProductDescriptionTooLong = validationError("product description exceeds maximum length of 1000 characters")

	ErrEmptyCategory = validationError("product category is required")
	ErrEmptyUnit     = validationError("product unit of measure is required")

	// ErrUnknownCategory, ErrUnknownUnit and ErrUnknownProvider are returned when a
	// draft references an identifier that does not resolve.
	ErrUnknownCategory = validationError("product category does not exist")
	ErrUnknownUnit     = validationError("product unit of measure does not exist")
	ErrUnknownProvider = validationError("product provider does not exist")

	// ErrDuplicateProductCode indicates another product already uses the code.
	ErrDuplicateProductCode = validationError("product code is already in use")

	// ErrDuplicateProductName indicates another product in the same category already uses the name.
	ErrDuplicateProductName = validationError("product name is already in use within the category")
)

// Domain errors for prices and stock
var (
	ErrMissingPrice = validationError("base price is required")

	// ErrNonPositivePrice indicates a base price of zero or less.
	ErrNonPositivePrice = validationError("base price must be greater than zero")

	// ErrPriceAboveCeiling indicates a base price above the configured ceiling.
	ErrPriceAboveCeiling = validationError("base price exceeds the allowed maximum")

	// ErrPriceTooPrecise indicates a base or purchase price with fractions of a cent.
	ErrPriceTooPrecise = validationError("prices allow at most two decimal places")

	ErrNegativePurchasePrice = validationError("purchase price cannot be negative")
	ErrNegativeStock         = validationError("current stock cannot be negative")
	ErrNegativeMinimumStock  = validationError("minimum stock cannot be negative")

	// ErrInvalidMoney indicates a monetary amount that could not be parsed.
	ErrInvalidMoney = validationError("invalid monetary amount")
)

// Domain errors for reference data
var (
	ErrEmptyReferenceName = validationError("name cannot be empty")
)

// Lookup errors
var (
	// ErrProductNotFound indicates that a product with the given ID does not exist.
	ErrProductNotFound = notFoundError("product not found")

	ErrCategoryNotFound = notFoundError("category not found")
	ErrProviderNotFound = notFoundError("provider not found")
	ErrUnitNotFound     = notFoundError("unit of measure not found")
)

// Lifecycle errors
var (
	// ErrCannotDeactivateWithStock indicates a deactivation attempt while units remain in stock.
	ErrCannotDeactivateWithStock = conflictError("cannot deactivate a product with stock on hand")

	// ErrCannotActivateExpired indicates an activation attempt for a product past its expiration date.
	ErrCannotActivateExpired = conflictError("cannot activate an expired product")

	// ErrCannotDeleteActiveProduct indicates an attempt to delete an active product.
	ErrCannotDeleteActiveProduct = conflictError("cannot delete an active product")

	// ErrInactiveProductWithStock indicates an update that would leave stock on an inactive product.
	ErrInactiveProductWithStock = conflictError("an inactive product cannot hold stock; activate it first")

	// ErrAlertAlreadyRaised is returned by stores when a commit carries a
	// deduplicated alert another writer recorded first.
	ErrAlertAlreadyRaised = conflictError("an alert of this kind was already raised for the product")
)
