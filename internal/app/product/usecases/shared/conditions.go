package shared

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/murkotick/stock-alert-service/internal/app/product/contracts"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
	"github.com/murkotick/stock-alert-service/internal/app/product/domain/services"
)

// SystemActor is recorded on alerts raised by scheduled work.
const SystemActor = "system"

// ExpirationAlert classifies p and returns a new alert unless one of the same
// kind was already raised for the product.
func ExpirationAlert(ctx context.Context, alerts contracts.AlertStore, cls *services.ExpirationClassifier,
	p *domain.Product, today civil.Date, actor string, now time.Time) (*domain.Alert, error) {
	_, candidate := cls.Evaluate(p, today)
	return dedup(ctx, alerts, p, candidate, actor, now)
}

// StockAlert returns a low-stock alert unless one was already raised for the product.
func StockAlert(ctx context.Context, alerts contracts.AlertStore, p *domain.Product, actor string, now time.Time) (*domain.Alert, error) {
	return dedup(ctx, alerts, p, services.StockCheck(p), actor, now)
}

// ConditionAlerts runs the expiration and stock checks, in that order.
func ConditionAlerts(ctx context.Context, alerts contracts.AlertStore, cls *services.ExpirationClassifier,
	p *domain.Product, today civil.Date, actor string, now time.Time) ([]*domain.Alert, error) {
	var out []*domain.Alert

	exp, err := ExpirationAlert(ctx, alerts, cls, p, today, actor, now)
	if err != nil {
		return nil, err
	}
	if exp != nil {
		out = append(out, exp)
	}

	stock, err := StockAlert(ctx, alerts, p, actor, now)
	if err != nil {
		return nil, err
	}
	if stock != nil {
		out = append(out, stock)
	}
	return out, nil
}

func dedup(ctx context.Context, alerts contracts.AlertStore, p *domain.Product, c *domain.AlertCandidate,
	actor string, now time.Time) (*domain.Alert, error) {
	if c == nil {
		return nil, nil
	}
	exists, err := alerts.ExistsActive(ctx, p.ID(), c.Kind)
	if err != nil {
		return nil, fmt.Errorf("check %s alert for %s: %w", c.Kind, p.ID(), err)
	}
	if exists {
		return nil, nil
	}
	return domain.NewAlert(uuid.New().String(), p.ID(), *c, actor, now), nil
}

// NewAlerts turns price-rule candidates into alerts. They are not deduplicated.
func NewAlerts(productID string, cs []domain.AlertCandidate, actor string, now time.Time) []*domain.Alert {
	out := make([]*domain.Alert, 0, len(cs))
	for _, c := range cs {
		out = append(out, domain.NewAlert(uuid.New().String(), productID, c, actor, now))
	}
	return out
}
