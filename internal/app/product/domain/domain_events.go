package domain

import "time"

// DomainEvent is a marker interface for all domain events.
// Domain events represent facts about things that have happened in the domain.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// ProductCreatedEvent is raised when a new product is created.
type ProductCreatedEvent struct {
	ProductID  string
	Name       string
	Code       string
	CategoryID string
	BasePrice  *Money
	Actor      string
	CreatedAt  time.Time
}

func (e *ProductCreatedEvent) EventType() string { return "product.created" }
func (e *ProductCreatedEvent) AggregateID() string { return e.ProductID }
func (e *ProductCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// ProductUpdatedEvent is raised when fields other than the base price change.
type ProductUpdatedEvent struct {
	ProductID string
	Actor     string
	UpdatedAt time.Time
	Changes   map[string]interface{} // field name -> new value
}

func (e *ProductUpdatedEvent) EventType() string { return "product.updated" }
func (e *ProductUpdatedEvent) AggregateID() string { return e.ProductID }
func (e *ProductUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// PriceChangedEvent is raised when the base price of a product changes.
type PriceChangedEvent struct {
	ProductID string
	OldPrice  *Money
	NewPrice  *Money
	Actor     string
	ChangedAt time.Time
}

func (e *PriceChangedEvent) EventType() string { return "price.changed" }
func (e *PriceChangedEvent) AggregateID() string { return e.ProductID }
func (e *PriceChangedEvent) OccurredAt() time.Time { return e.ChangedAt }

type ProductActivatedEvent struct {
	ProductID   string
	ActivatedAt time.Time
}

func (e *ProductActivatedEvent) EventType() string { return "product.activated" }
func (e *ProductActivatedEvent) AggregateID() string { return e.ProductID }
func (e *ProductActivatedEvent) OccurredAt() time.Time { return e.ActivatedAt }

type ProductDeactivatedEvent struct {
	ProductID     string
	DeactivatedAt time.Time
}

func (e *ProductDeactivatedEvent) EventType() string { return "product.deactivated" }
func (e *ProductDeactivatedEvent) AggregateID() string { return e.ProductID }
func (e *ProductDeactivatedEvent) OccurredAt() time.Time { return e.DeactivatedAt }

// ProductDeletedEvent is raised when an inactive product is removed.
type ProductDeletedEvent struct {
	ProductID string
	Code      string
	DeletedAt time.Time
}

func (e *ProductDeletedEvent) EventType() string { return "product.deleted" }
func (e *ProductDeletedEvent) AggregateID() string { return e.ProductID }
func (e *ProductDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }
