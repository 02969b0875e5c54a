package m_outbox

const (
	TableName = "outbox_events"

	ColEventID     = "event_id"
	ColEventType   = "event_type"
	ColAggregateID = "aggregate_id"
	ColPayload     = "payload"
	ColStatus      = "status"
	ColCreatedAt   = "created_at"
	ColProcessedAt = "processed_at"
)

// Columns lists the columns written on insert; processed_at is set by the relay.
var Columns = []string{ColEventID, ColEventType, ColAggregateID, ColPayload, ColStatus, ColCreatedAt}
