package m_alert

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Row mirrors one alerts row.
type Row struct {
	AlertID     string    `spanner:"alert_id"`
	ProductID   string    `spanner:"product_id"`
	Kind        string    `spanner:"kind"`
	Severity    string    `spanner:"severity"`
	Description string    `spanner:"description"`
	Actor       string    `spanner:"actor"`
	CreatedAt   time.Time `spanner:"created_at"`
}

// InsertMutation constructs an insert for the alerts table. Alerts are never updated.
func InsertMutation(r Row) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		r.AlertID, r.ProductID, r.Kind, r.Severity, r.Description, r.Actor, r.CreatedAt,
	})
}

// GuardInsertMutation claims the (product, kind) pair of r.
func GuardInsertMutation(r Row) *spanner.Mutation {
	return spanner.Insert(GuardTableName, GuardColumns, []interface{}{r.ProductID, r.Kind, r.AlertID})
}
