package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

const (
	// VarianceThresholdPercent is the relative price move that counts as significant.
	VarianceThresholdPercent = 10

	// FrequentChangeWindow is the trailing window over which price changes are counted.
	FrequentChangeWindow = 7 * 24 * time.Hour

	// FrequentChangeLimit is the number of changes tolerated within the window.
	FrequentChangeLimit = 3
)

var varianceThreshold = decimal.NewFromInt(VarianceThresholdPercent)

// PriceBand is the range outside of which a base price is reported as anomalous.
// It does not reject prices; rejection is bounded by domain.PriceLimits.
type PriceBand struct {
	Min *domain.Money
	Max *domain.Money
}

// DefaultPriceBand returns the 1.00 - 500.00 band.
func DefaultPriceBand() PriceBand {
	return PriceBand{Min: domain.MustMoney("1.00"), Max: domain.MustMoney("500.00")}
}

// PriceRuleInput is everything the price rules look at.
// PreviousPrice is nil when there is no earlier price, as on creation.
type PriceRuleInput struct {
	PreviousPrice     *domain.Money
	NewPrice          *domain.Money
	PurchasePrice     *domain.Money
	RecentChangeCount int
}

// PriceRuleEngine is a domain service evaluating a price transition against the
// pricing rules. It has no side effects; the caller decides what to persist.
type PriceRuleEngine struct {
	band PriceBand
}

// NewPriceRuleEngine creates a PriceRuleEngine for the given band.
func NewPriceRuleEngine(band PriceBand) *PriceRuleEngine {
	return &PriceRuleEngine{band: band}
}

// Band returns the configured reporting band.
func (e *PriceRuleEngine) Band() PriceBand {
	return e.band
}

// Evaluate runs every rule independently and returns the candidates in rule order:
// variance, below cost, frequent changes, out of range, non-positive.
func (e *PriceRuleEngine) Evaluate(in PriceRuleInput) []domain.AlertCandidate {
	out := make([]domain.AlertCandidate, 0, 2)
	price := in.NewPrice

	if in.PreviousPrice != nil && in.PreviousPrice.IsPositive() {
		variation := price.PercentChangeFrom(in.PreviousPrice)
		if variation.GreaterThanOrEqual(varianceThreshold) {
			out = append(out, domain.AlertCandidate{
				Kind:     domain.AlertPriceVariance,
				Severity: domain.SeverityWarning,
				Description: fmt.Sprintf("Significant price change: %s%% (from %s to %s)",
					variation.StringFixed(2), in.PreviousPrice, price),
			})
		}
	}

	if in.PurchasePrice != nil && price.LessThan(in.PurchasePrice) {
		out = append(out, domain.AlertCandidate{
			Kind:        domain.AlertBelowCost,
			Severity:    domain.SeverityCritical,
			Description: fmt.Sprintf("Price %s is below the purchase price %s", price, in.PurchasePrice),
		})
	}

	if in.RecentChangeCount > FrequentChangeLimit {
		out = append(out, domain.AlertCandidate{
			Kind:        domain.AlertFrequentChanges,
			Severity:    domain.SeverityInformative,
			Description: fmt.Sprintf("Price changed %d times in the last 7 days", in.RecentChangeCount),
		})
	}

	if (e.band.Min != nil && price.LessThan(e.band.Min)) || (e.band.Max != nil && price.GreaterThan(e.band.Max)) {
		out = append(out, domain.AlertCandidate{
			Kind:     domain.AlertPriceOutOfRange,
			Severity: domain.SeverityCritical,
			Description: fmt.Sprintf("Price %s is outside the allowed range [%s, %s]",
				price, moneyOrDash(e.band.Min), moneyOrDash(e.band.Max)),
		})
	}

	if !price.IsPositive() {
		out = append(out, domain.AlertCandidate{
			Kind:        domain.AlertPriceNonPositive,
			Severity:    domain.SeverityCritical,
			Description: fmt.Sprintf("Price %s is zero or negative", price),
		})
	}

	return out
}

func moneyOrDash(m *domain.Money) string {
	if m == nil {
		return "-"
	}
	return m.String()
}
