package m_alert

import "strings"

const (
	TableName = "alerts"

	ColAlertID     = "alert_id"
	ColProductID   = "product_id"
	ColKind        = "kind"
	ColSeverity    = "severity"
	ColDescription = "description"
	ColActor       = "actor"
	ColCreatedAt   = "created_at"
)

var Columns = []string{ColAlertID, ColProductID, ColKind, ColSeverity, ColDescription, ColActor, ColCreatedAt}

// SelectList returns the comma-separated column list.
func SelectList() string {
	return strings.Join(Columns, ", ")
}

// GuardTableName holds one row per (product, kind) for deduplicated kinds.
// Its primary key makes a second insert of the same pair fail the commit.
const GuardTableName = "alert_guards"

var GuardColumns = []string{ColProductID, ColKind, ColAlertID}
