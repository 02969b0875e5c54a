package domain

import (
	"strings"

	"cloud.google.com/go/civil"
)

// ExpirationStatus is derived from a product's expiration date and the current day.
// It is never stored.
type ExpirationStatus string

const (
	ExpirationNone       ExpirationStatus = "NONE"
	ExpirationFresh      ExpirationStatus = "FRESH"
	ExpirationNearExpiry ExpirationStatus = "NEAR_EXPIRY"
	ExpirationExpired    ExpirationStatus = "EXPIRED"
)

// NearExpiryWindowDays is the inclusive number of days before the expiration
// date during which a product counts as near expiry.
const NearExpiryWindowDays = 10

// ClassifyExpiration returns the status and the whole days remaining until the
// expiration date. Days is zero when date is nil.
func ClassifyExpiration(date *civil.Date, today civil.Date) (ExpirationStatus, int) {
	if date == nil {
		return ExpirationNone, 0
	}
	days := date.DaysSince(today)
	switch {
	case days < 0:
		return ExpirationExpired, days
	case days <= NearExpiryWindowDays:
		return ExpirationNearExpiry, days
	default:
		return ExpirationFresh, days
	}
}

// ParseExpirationStatus accepts the status names case-insensitively.
func ParseExpirationStatus(s string) (ExpirationStatus, error) {
	switch st := ExpirationStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case ExpirationNone, ExpirationFresh, ExpirationNearExpiry, ExpirationExpired:
		return st, nil
	}
	return "", Validationf("unknown expiration status %q", s)
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, Validationf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}
