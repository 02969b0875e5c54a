package m_price_change

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Row mirrors one price_changes row.
type Row struct {
	ProductID string    `spanner:"product_id"`
	ChangeID  string    `spanner:"change_id"`
	OldPrice  big.Rat   `spanner:"old_price"`
	NewPrice  big.Rat   `spanner:"new_price"`
	Actor     string    `spanner:"actor"`
	ChangedAt time.Time `spanner:"changed_at"`
}

// InsertMutation appends a ledger entry.
func InsertMutation(r Row) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		r.ProductID, r.ChangeID, &r.OldPrice, &r.NewPrice, r.Actor, r.ChangedAt,
	})
}
