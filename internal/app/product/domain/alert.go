package domain

import "time"

// AlertKind names the condition an alert reports.
type AlertKind string

const (
	AlertPriceVariance    AlertKind = "price-variance"
	AlertBelowCost        AlertKind = "below-cost"
	AlertFrequentChanges  AlertKind = "frequent-changes"
	AlertPriceOutOfRange  AlertKind = "price-out-of-range"
	AlertPriceNonPositive AlertKind = "price-non-positive"
	AlertExpiringSoon     AlertKind = "expiring-soon"
	AlertExpired          AlertKind = "expired"
	AlertLowStock         AlertKind = "low-stock"
)

// Deduplicated reports whether at most one alert of kind k may exist per
// product. Price-rule kinds are raised on every accepted price change.
func (k AlertKind) Deduplicated() bool {
	switch k {
	case AlertExpiringSoon, AlertExpired, AlertLowStock:
		return true
	}
	return false
}

// Severity of an alert.
type Severity string

const (
	SeverityInformative Severity = "informative"
	SeverityWarning     Severity = "warning"
	SeverityCritical    Severity = "critical"
)

// AlertCandidate is an alert the rule evaluators decided to raise, before it is
// bound to an identifier, actor and timestamp.
type AlertCandidate struct {
	Kind        AlertKind
	Severity    Severity
	Description string
}

// Alert is an immutable notification raised against a product.
// Alerts are append-only and outlive the product they reference.
type Alert struct {
	id          string
	productID   string
	kind        AlertKind
	severity    Severity
	description string
	actor       string
	createdAt   time.Time
}

// NewAlert binds a candidate to a product.
func NewAlert(id, productID string, c AlertCandidate, actor string, now time.Time) *Alert {
	return &Alert{
		id:          id,
		productID:   productID,
		kind:        c.Kind,
		severity:    c.Severity,
		description: c.Description,
		actor:       actor,
		createdAt:   now,
	}
}

// ReconstructAlert rebuilds an Alert from persisted state.
func ReconstructAlert(id, productID string, kind AlertKind, severity Severity, description, actor string, createdAt time.Time) *Alert {
	return &Alert{
		id:          id,
		productID:   productID,
		kind:        kind,
		severity:    severity,
		description: description,
		actor:       actor,
		createdAt:   createdAt,
	}
}

func (a *Alert) ID() string { return a.id }
func (a *Alert) ProductID() string { return a.productID }
func (a *Alert) Kind() AlertKind { return a.kind }
func (a *Alert) Severity() Severity { return a.severity }
func (a *Alert) Description() string { return a.description }
func (a *Alert) Actor() string { return a.actor }
func (a *Alert) CreatedAt() time.Time { return a.createdAt }
