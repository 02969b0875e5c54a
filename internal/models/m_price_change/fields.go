package m_price_change

import "strings"

// price_changes is interleaved in products and deleted with its parent.
const (
	TableName = "price_changes"

	ColProductID = "product_id"
	ColChangeID  = "change_id"
	ColOldPrice  = "old_price"
	ColNewPrice  = "new_price"
	ColActor     = "actor"
	ColChangedAt = "changed_at"
)

var Columns = []string{ColProductID, ColChangeID, ColOldPrice, ColNewPrice, ColActor, ColChangedAt}

// SelectList returns the comma-separated column list.
func SelectList() string {
	return strings.Join(Columns, ", ")
}
