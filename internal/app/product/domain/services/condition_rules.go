package services

import (
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

// ExpirationClassifier turns a product's expiration date into an alert candidate.
type ExpirationClassifier struct{}

func NewExpirationClassifier() *ExpirationClassifier {
	return &ExpirationClassifier{}
}

// Evaluate returns the expiration status and, for expired or near-expiry
// products, the alert that describes it.
func (c *ExpirationClassifier) Evaluate(p *domain.Product, today civil.Date) (domain.ExpirationStatus, *domain.AlertCandidate) {
	status, days := p.ExpirationStatus(today)
	switch status {
	case domain.ExpirationExpired:
		return status, &domain.AlertCandidate{
			Kind:     domain.AlertExpired,
			Severity: domain.SeverityCritical,
			Description: fmt.Sprintf("Product %q expired on %s (%s ago)",
				p.Name(), p.ExpirationDate(), pluralDays(-days)),
		}
	case domain.ExpirationNearExpiry:
		return status, &domain.AlertCandidate{
			Kind:     domain.AlertExpiringSoon,
			Severity: domain.SeverityWarning,
			Description: fmt.Sprintf("Product %q expires in %s (on %s)",
				p.Name(), pluralDays(days), p.ExpirationDate()),
		}
	}
	return status, nil
}

// StockCheck returns a low-stock candidate when current stock is at or below the minimum.
func StockCheck(p *domain.Product) *domain.AlertCandidate {
	if !p.IsLowStock() {
		return nil
	}
	return &domain.AlertCandidate{
		Kind:     domain.AlertLowStock,
		Severity: domain.SeverityWarning,
		Description: fmt.Sprintf("Product %q has %d units in stock, at or below the minimum of %d",
			p.Name(), p.StockCurrent(), p.StockMinimum()),
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
