package shared

import (
	"encoding/json"
	"fmt"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

// MarshalDomainEventPayload converts a domain event into a JSON payload suitable for the outbox.
//
// The domain layer avoids serialization concerns; this adapter extracts primitives
// (Money as a fixed two-decimal string) to keep payloads readable by consumers.
func MarshalDomainEventPayload(ev domain.DomainEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload map[string]interface{}
	switch e := ev.(type) {
	case *domain.ProductCreatedEvent:
		payload = map[string]interface{}{
			"product_id":  e.ProductID,
			"name":        e.Name,
			"code":        e.Code,
			"category_id": e.CategoryID,
			"base_price":  e.BasePrice.String(),
			"actor":       e.Actor,
			"created_at":  e.CreatedAt,
		}

	case *domain.ProductUpdatedEvent:
		payload = map[string]interface{}{
			"product_id":  e.ProductID,
			"actor":       e.Actor,
			"changes":     e.Changes,
			"updated_at":  e.UpdatedAt,
			"occurred_at": e.OccurredAt(),
		}

	case *domain.PriceChangedEvent:
		payload = map[string]interface{}{
			"product_id":  e.ProductID,
			"old_price":   e.OldPrice.String(),
			"new_price":   e.NewPrice.String(),
			"actor":       e.Actor,
			"changed_at":  e.ChangedAt,
			"occurred_at": e.OccurredAt(),
		}

	case *domain.ProductActivatedEvent:
		payload = map[string]interface{}{
			"product_id":   e.ProductID,
			"activated_at": e.ActivatedAt,
			"occurred_at":  e.OccurredAt(),
		}

	case *domain.ProductDeactivatedEvent:
		payload = map[string]interface{}{
			"product_id":     e.ProductID,
			"deactivated_at": e.DeactivatedAt,
			"occurred_at":    e.OccurredAt(),
		}

	case *domain.ProductDeletedEvent:
		payload = map[string]interface{}{
			"product_id":  e.ProductID,
			"code":        e.Code,
			"deleted_at":  e.DeletedAt,
			"occurred_at": e.OccurredAt(),
		}
	}

	var (
		b   []byte
		err error
	)
	if payload != nil {
		b, err = json.Marshal(payload)
	} else {
		// Fallback: try to marshal the event directly.
		b, err = json.Marshal(ev)
	}
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
	}
	return string(b), nil
}
