package contracts

import (
	"time"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

// OutboxStatusPending is the status of an outbox event that has not been relayed.
const OutboxStatusPending = "pending"

// OutboxEvent is the application-level representation of an event persisted to the outbox table.
// Usecases are responsible for enriching domain events into this structure.
type OutboxEvent struct {
	EventID      string
	EventType    string
	AggregateID  string
	PayloadJSON  string
	Status       string
	CreatedAtUTC time.Time
}

// ChangeSet collects the writes produced by one operation.
// Stores apply them in a fixed order: reference data, product inserts and
// updates, price history, alerts, outbox events, then product deletions.
type ChangeSet struct {
	categories     []*domain.Category
	providers      []*domain.Provider
	units          []*domain.Unit
	productInserts []*domain.Product
	productUpdates []*domain.Product
	priceChanges   []*domain.PriceChange
	alerts         []*domain.Alert
	events         []*OutboxEvent
	productDeletes []string
}

func NewChangeSet() *ChangeSet {
	return &ChangeSet{}
}

func (cs *ChangeSet) UpsertCategory(c *domain.Category) { cs.categories = append(cs.categories, c) }
func (cs *ChangeSet) UpsertProvider(p *domain.Provider) { cs.providers = append(cs.providers, p) }
func (cs *ChangeSet) UpsertUnit(u *domain.Unit) { cs.units = append(cs.units, u) }

// InsertProduct schedules a new product row.
func (cs *ChangeSet) InsertProduct(p *domain.Product) {
	if p != nil {
		cs.productInserts = append(cs.productInserts, p)
	}
}

// UpdateProduct schedules the dirty fields of p. Products without changes are skipped.
func (cs *ChangeSet) UpdateProduct(p *domain.Product) {
	if p == nil || !p.Changes().HasChanges() {
		return
	}
	cs.productUpdates = append(cs.productUpdates, p)
}

// DeleteProduct schedules removal of the product and its price history.
func (cs *ChangeSet) DeleteProduct(id string) {
	cs.productDeletes = append(cs.productDeletes, id)
}

func (cs *ChangeSet) AppendPriceChange(c *domain.PriceChange) {
	if c != nil {
		cs.priceChanges = append(cs.priceChanges, c)
	}
}

func (cs *ChangeSet) AddAlert(a *domain.Alert) {
	if a != nil {
		cs.alerts = append(cs.alerts, a)
	}
}

// RemoveAlerts drops the scheduled alerts drop matches and reports how many went.
func (cs *ChangeSet) RemoveAlerts(drop func(*domain.Alert) bool) int {
	kept := make([]*domain.Alert, 0, len(cs.alerts))
	for _, a := range cs.alerts {
		if !drop(a) {
			kept = append(kept, a)
		}
	}
	removed := len(cs.alerts) - len(kept)
	cs.alerts = kept
	return removed
}

func (cs *ChangeSet) AddEvent(e *OutboxEvent) {
	if e != nil {
		cs.events = append(cs.events, e)
	}
}

func (cs *ChangeSet) Categories() []*domain.Category { return cs.categories }
func (cs *ChangeSet) Providers() []*domain.Provider { return cs.providers }
func (cs *ChangeSet) Units() []*domain.Unit { return cs.units }
func (cs *ChangeSet) ProductInserts() []*domain.Product { return cs.productInserts }
func (cs *ChangeSet) ProductUpdates() []*domain.Product { return cs.productUpdates }
func (cs *ChangeSet) ProductDeletes() []string { return cs.productDeletes }
func (cs *ChangeSet) PriceChanges() []*domain.PriceChange { return cs.priceChanges }
func (cs *ChangeSet) Alerts() []*domain.Alert { return cs.alerts }
func (cs *ChangeSet) Events() []*OutboxEvent { return cs.events }

// IsEmpty reports whether the set holds no writes.
func (cs *ChangeSet) IsEmpty() bool {
	return cs == nil || len(cs.categories)+len(cs.providers)+len(cs.units)+
		len(cs.productInserts)+len(cs.productUpdates)+len(cs.productDeletes)+
		len(cs.priceChanges)+len(cs.alerts)+len(cs.events) == 0
}
