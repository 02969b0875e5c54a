package utils

import (
	"time"

	"cloud.google.com/go/civil"
)

// FormatTime renders t as RFC3339 in UTC, the format every response uses.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatDatePtr renders a calendar date as YYYY-MM-DD, nil for nil.
func FormatDatePtr(d *civil.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
