package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Row mirrors one outbox_events row.
type Row struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string
	Status      string
	CreatedAt   time.Time
}

// InsertMutation constructs a mutation for the outbox table.
func InsertMutation(r Row) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		r.EventID, r.EventType, r.AggregateID, r.Payload, r.Status, r.CreatedAt,
	})
}
