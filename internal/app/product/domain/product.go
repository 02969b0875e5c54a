package domain

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Field constants for change tracking
const (
	FieldName           = "name"
	FieldCode           = "code"
	FieldDescription    = "description"
	FieldBasePrice      = "base_price"
	FieldPurchasePrice  = "purchase_price"
	FieldStockCurrent   = "stock_current"
	FieldStockMinimum   = "stock_minimum"
	FieldExpirationDate = "expiration_date"
	FieldActive         = "active"
	FieldCategory       = "category_id"
	FieldProvider       = "provider_id"
	FieldUnit           = "unit_id"
	FieldUpdatedAt      = "updated_at"
)

const (
	maxNameLength        = 255
	maxCodeLength        = 64
	maxDescriptionLength = 1000
)

// PriceLimits bounds the base price a product may be given.
// A nil Ceiling disables the upper bound.
type PriceLimits struct {
	Ceiling *Money
}

// ProductDraft carries the caller-supplied attributes of a product for create and update.
type ProductDraft struct {
	Name           string
	Code           string
	Description    string
	BasePrice      *Money
	PurchasePrice  *Money
	StockCurrent   int
	StockMinimum   int
	ExpirationDate *civil.Date
	CategoryID     string
	ProviderID     *string
	UnitID         string
}

func (d ProductDraft) normalized() ProductDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Code = strings.TrimSpace(d.Code)
	d.Description = strings.TrimSpace(d.Description)
	d.CategoryID = strings.TrimSpace(d.CategoryID)
	d.UnitID = strings.TrimSpace(d.UnitID)
	if d.ProviderID != nil {
		v := strings.TrimSpace(*d.ProviderID)
		if v == "" {
			d.ProviderID = nil
		} else {
			d.ProviderID = &v
		}
	}
	return d
}

// ProductSnapshot is the persisted shape of a product, used to rebuild the aggregate.
type ProductSnapshot struct {
	ID             string
	Name           string
	Code           string
	Description    string
	BasePrice      *Money
	PurchasePrice  *Money
	StockCurrent   int
	StockMinimum   int
	ExpirationDate *civil.Date
	Active         bool
	CategoryID     string
	ProviderID     *string
	UnitID         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Product is the aggregate root of the inventory.
// A product holding stock is always active, and an expired product is never re-activated.
type Product struct {
	id             string
	name           string
	code           string
	description    string
	basePrice      *Money
	purchasePrice  *Money
	stockCurrent   int
	stockMinimum   int
	expirationDate *civil.Date
	active         bool
	categoryID     string
	providerID     *string
	unitID         string
	createdAt      time.Time
	updatedAt      time.Time
	changes        *ChangeTracker
	events         []DomainEvent
}

// NewProduct creates a new, active Product from a validated draft.
func NewProduct(id string, d ProductDraft, limits PriceLimits, actor string, now time.Time) (*Product, error) {
	d = d.normalized()
	if err := validateDraft(d, limits); err != nil {
		return nil, err
	}

	p := &Product{
		id:             id,
		name:           d.Name,
		code:           d.Code,
		description:    d.Description,
		basePrice:      d.BasePrice,
		purchasePrice:  d.PurchasePrice,
		stockCurrent:   d.StockCurrent,
		stockMinimum:   d.StockMinimum,
		expirationDate: d.ExpirationDate,
		active:         true,
		categoryID:     d.CategoryID,
		providerID:     d.ProviderID,
		unitID:         d.UnitID,
		createdAt:      now,
		updatedAt:      now,
		changes:        NewChangeTracker(),
		events:         make([]DomainEvent, 0),
	}

	p.events = append(p.events, &ProductCreatedEvent{
		ProductID:  p.id,
		Name:       p.name,
		Code:       p.code,
		CategoryID: p.categoryID,
		BasePrice:  p.basePrice,
		Actor:      actor,
		CreatedAt:  now,
	})

	return p, nil
}

// ReconstructProduct reconstructs a Product from persisted state.
// Used by stores when loading from the database.
func ReconstructProduct(s ProductSnapshot) *Product {
	return &Product{
		id:             s.ID,
		name:           s.Name,
		code:           s.Code,
		description:    s.Description,
		basePrice:      s.BasePrice,
		purchasePrice:  s.PurchasePrice,
		stockCurrent:   s.StockCurrent,
		stockMinimum:   s.StockMinimum,
		expirationDate: s.ExpirationDate,
		active:         s.Active,
		categoryID:     s.CategoryID,
		providerID:     s.ProviderID,
		unitID:         s.UnitID,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
		changes:        NewChangeTracker(),
		events:         make([]DomainEvent, 0),
	}
}

// Getters

func (p *Product) ID() string { return p.id }
func (p *Product) Name() string { return p.name }
func (p *Product) Code() string { return p.code }
func (p *Product) Description() string { return p.description }
func (p *Product) BasePrice() *Money { return p.basePrice }
func (p *Product) PurchasePrice() *Money { return p.purchasePrice }
func (p *Product) StockCurrent() int { return p.stockCurrent }
func (p *Product) StockMinimum() int { return p.stockMinimum }
func (p *Product) ExpirationDate() *civil.Date { return p.expirationDate }
func (p *Product) IsActive() bool { return p.active }
func (p *Product) CategoryID() string { return p.categoryID }
func (p *Product) ProviderID() *string { return p.providerID }
func (p *Product) UnitID() string { return p.unitID }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
func (p *Product) Changes() *ChangeTracker { return p.changes }
func (p *Product) DomainEvents() []DomainEvent { return p.events }

// Snapshot returns the persistable state of the product.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:             p.id,
		Name:           p.name,
		Code:           p.code,
		Description:    p.description,
		BasePrice:      p.basePrice,
		PurchasePrice:  p.purchasePrice,
		StockCurrent:   p.stockCurrent,
		StockMinimum:   p.stockMinimum,
		ExpirationDate: p.expirationDate,
		Active:         p.active,
		CategoryID:     p.categoryID,
		ProviderID:     p.providerID,
		UnitID:         p.unitID,
		CreatedAt:      p.createdAt,
		UpdatedAt:      p.updatedAt,
	}
}

// ExpirationStatus classifies the product against today.
func (p *Product) ExpirationStatus(today civil.Date) (ExpirationStatus, int) {
	return ClassifyExpiration(p.expirationDate, today)
}

// IsExpired reports whether the expiration date lies before today.
func (p *Product) IsExpired(today civil.Date) bool {
	return p.expirationDate != nil && p.expirationDate.Before(today)
}

// IsLowStock reports whether current stock has fallen to the minimum or below.
func (p *Product) IsLowStock() bool {
	return p.stockCurrent <= p.stockMinimum
}

// PriceChange returns the price transition recorded by Revise, if any.
func (p *Product) PriceChange() *PriceChangedEvent {
	for _, ev := range p.events {
		if pc, ok := ev.(*PriceChangedEvent); ok {
			return pc
		}
	}
	return nil
}

// Business Methods

// Revise applies a full draft to the product and returns the revised product.
// The receiver is left untouched so it can serve as the pre-update snapshot.
func (p *Product) Revise(d ProductDraft, actor string, limits PriceLimits, now time.Time) (*Product, error) {
	d = d.normalized()
	if err := validateDraft(d, limits); err != nil {
		return nil, err
	}
	if !p.active && d.StockCurrent > 0 {
		return nil, ErrInactiveProductWithStock
	}

	next := ReconstructProduct(p.Snapshot())
	changes := make(map[string]interface{})

	setString := func(field string, dst *string, v string) {
		if *dst != v {
			*dst = v
			next.changes.MarkDirty(field)
			changes[field] = v
		}
	}
	setInt := func(field string, dst *int, v int) {
		if *dst != v {
			*dst = v
			next.changes.MarkDirty(field)
			changes[field] = v
		}
	}

	setString(FieldName, &next.name, d.Name)
	setString(FieldCode, &next.code, d.Code)
	setString(FieldDescription, &next.description, d.Description)
	setString(FieldCategory, &next.categoryID, d.CategoryID)
	setString(FieldUnit, &next.unitID, d.UnitID)
	setInt(FieldStockCurrent, &next.stockCurrent, d.StockCurrent)
	setInt(FieldStockMinimum, &next.stockMinimum, d.StockMinimum)

	if !optionalMoneyEqual(next.purchasePrice, d.PurchasePrice) {
		next.purchasePrice = d.PurchasePrice
		next.changes.MarkDirty(FieldPurchasePrice)
		if d.PurchasePrice != nil {
			changes[FieldPurchasePrice] = d.PurchasePrice.String()
		} else {
			changes[FieldPurchasePrice] = nil
		}
	}
	if !optionalDateEqual(next.expirationDate, d.ExpirationDate) {
		next.expirationDate = d.ExpirationDate
		next.changes.MarkDirty(FieldExpirationDate)
		if d.ExpirationDate != nil {
			changes[FieldExpirationDate] = d.ExpirationDate.String()
		} else {
			changes[FieldExpirationDate] = nil
		}
	}
	if !optionalStringEqual(next.providerID, d.ProviderID) {
		next.providerID = d.ProviderID
		next.changes.MarkDirty(FieldProvider)
		if d.ProviderID != nil {
			changes[FieldProvider] = *d.ProviderID
		} else {
			changes[FieldProvider] = nil
		}
	}

	next.updatedAt = now
	next.changes.MarkDirty(FieldUpdatedAt)

	if len(changes) > 0 {
		next.events = append(next.events, &ProductUpdatedEvent{
			ProductID: next.id,
			Actor:     actor,
			UpdatedAt: now,
			Changes:   changes,
		})
	}

	if !d.BasePrice.Equals(p.basePrice) {
		next.basePrice = d.BasePrice
		next.changes.MarkDirty(FieldBasePrice)
		next.events = append(next.events, &PriceChangedEvent{
			ProductID: next.id,
			OldPrice:  p.basePrice,
			NewPrice:  d.BasePrice,
			Actor:     actor,
			ChangedAt: now,
		})
	}

	return next, nil
}

// SetActive moves the product to the desired state. It reports false when the
// product already was in that state.
func (p *Product) SetActive(desired bool, today civil.Date, now time.Time) (bool, error) {
	if p.active == desired {
		return false, nil
	}
	if !desired && p.stockCurrent > 0 {
		return false, ErrCannotDeactivateWithStock
	}
	if desired && p.IsExpired(today) {
		return false, ErrCannotActivateExpired
	}

	p.active = desired
	p.updatedAt = now
	p.changes.MarkDirty(FieldActive)
	p.changes.MarkDirty(FieldUpdatedAt)

	if desired {
		p.events = append(p.events, &ProductActivatedEvent{ProductID: p.id, ActivatedAt: now})
	} else {
		p.events = append(p.events, &ProductDeactivatedEvent{ProductID: p.id, DeactivatedAt: now})
	}
	return true, nil
}

// MarkDeleted checks the product may be removed and records the deletion.
// Active products cannot be deleted.
func (p *Product) MarkDeleted(now time.Time) error {
	if p.active {
		return ErrCannotDeleteActiveProduct
	}
	p.events = append(p.events, &ProductDeletedEvent{ProductID: p.id, Code: p.code, DeletedAt: now})
	return nil
}

// ClearEvents clears the accumulated domain events.
// Should be called after events have been published.
func (p *Product) ClearEvents() {
	p.events = make([]DomainEvent, 0)
}

// Validation helpers

func validateDraft(d ProductDraft, limits PriceLimits) error {
	if d.Name == "" {
		return ErrEmptyProductName
	}
	if len(d.Name) > maxNameLength {
		return ErrProductNameTooLong
	}
	if d.Code == "" {
		return ErrEmptyProductCode
	}
	if len(d.Code) > maxCodeLength {
		return ErrProductCodeTooLong
	}
	if len(d.Description) > maxDescriptionLength {
		return ErrProductDescriptionTooLong
	}
	if err := validatePrice(d.BasePrice, limits); err != nil {
		return err
	}
	if d.PurchasePrice != nil {
		if d.PurchasePrice.IsNegative() {
			return ErrNegativePurchasePrice
		}
		if !d.PurchasePrice.WholeCents() {
			return ErrPriceTooPrecise
		}
	}
	if d.StockCurrent < 0 {
		return ErrNegativeStock
	}
	if d.StockMinimum < 0 {
		return ErrNegativeMinimumStock
	}
	if d.CategoryID == "" {
		return ErrEmptyCategory
	}
	if d.UnitID == "" {
		return ErrEmptyUnit
	}
	return nil
}

func validatePrice(price *Money, limits PriceLimits) error {
	if price == nil {
		return ErrMissingPrice
	}
	if !price.IsPositive() {
		return ErrNonPositivePrice
	}
	if !price.WholeCents() {
		return ErrPriceTooPrecise
	}
	if limits.Ceiling != nil && price.GreaterThan(limits.Ceiling) {
		return ErrPriceAboveCeiling
	}
	return nil
}

func optionalMoneyEqual(a, b *Money) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

func optionalDateEqual(a, b *civil.Date) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func optionalStringEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
