package domain

import "time"

// PriceChange is one entry of a product's price history. Entries are never
// edited; they are removed only together with their product.
type PriceChange struct {
	id        string
	productID string
	oldPrice  *Money
	newPrice  *Money
	actor     string
	changedAt time.Time
}

// NewPriceChange records the price transition described by ev.
func NewPriceChange(id string, ev *PriceChangedEvent) *PriceChange {
	return &PriceChange{
		id:        id,
		productID: ev.ProductID,
		oldPrice:  ev.OldPrice,
		newPrice:  ev.NewPrice,
		actor:     ev.Actor,
		changedAt: ev.ChangedAt,
	}
}

// ReconstructPriceChange rebuilds a PriceChange from persisted state.
func ReconstructPriceChange(id, productID string, oldPrice, newPrice *Money, actor string, changedAt time.Time) *PriceChange {
	return &PriceChange{
		id:        id,
		productID: productID,
		oldPrice:  oldPrice,
		newPrice:  newPrice,
		actor:     actor,
		changedAt: changedAt,
	}
}

func (c *PriceChange) ID() string { return c.id }
func (c *PriceChange) ProductID() string { return c.productID }
func (c *PriceChange) OldPrice() *Money { return c.oldPrice }
func (c *PriceChange) NewPrice() *Money { return c.newPrice }
func (c *PriceChange) Actor() string { return c.actor }
func (c *PriceChange) ChangedAt() time.Time { return c.changedAt }

// CountChangesSince counts the entries recorded strictly after since.
func CountChangesSince(history []*PriceChange, since time.Time) int {
	n := 0
	for _, c := range history {
		if c.changedAt.After(since) {
			n++
		}
	}
	return n
}
