package shared

import (
	"time"

	"github.com/google/uuid"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

// AddOutboxEvents enriches the product's pending domain events and schedules
// them in cs, so they commit together with the state change.
func AddOutboxEvents(cs *contracts.ChangeSet, p *domain.Product, now time.Time) error {
	for _, ev := range p.DomainEvents() {
		payload, err := MarshalDomainEventPayload(ev)
		if err != nil {
			return err
		}
		cs.AddEvent(&contracts.OutboxEvent{
			EventID:      uuid.New().String(),
			EventType:    ev.EventType(),
			AggregateID:  ev.AggregateID(),
			PayloadJSON:  payload,
			Status:       contracts.OutboxStatusPending,
			CreatedAtUTC: now.UTC(),
		})
	}
	return nil
}
