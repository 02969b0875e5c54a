package services

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/stock-alert-service/internal/app/product/domain"
)

var today = civil.Date{Year: 2026, Month: 3, Day: 1}

func productExpiringIn(t *testing.T, days *int, stock, minimum int) *domain.Product {
	t.Helper()
	d := domain.ProductDraft{
		Name: "Cheese", Code: "CHS-1", BasePrice: domain.MustMoney("5"),
		StockCurrent: stock, StockMinimum: minimum, CategoryID: "cat-1", UnitID: "unit-1",
	}
	if days != nil {
		exp := today.AddDays(*days)
		d.ExpirationDate = &exp
	}
	p, err := domain.NewProduct("p-1", d, domain.PriceLimits{}, "admin", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return p
}

func intPtr(v int) *int { return &v }

func TestExpirationClassifier(t *testing.T) {
	cls := NewExpirationClassifier()

	status, c := cls.Evaluate(productExpiringIn(t, nil, 5, 1), today)
	assert.Equal(t, domain.ExpirationNone, status)
	assert.Nil(t, c)

	status, c = cls.Evaluate(productExpiringIn(t, intPtr(11), 5, 1), today)
	assert.Equal(t, domain.ExpirationFresh, status)
	assert.Nil(t, c)

	status, c = cls.Evaluate(productExpiringIn(t, intPtr(10), 5, 1), today)
	assert.Equal(t, domain.ExpirationNearExpiry, status)
	require.NotNil(t, c)
	assert.Equal(t, domain.AlertExpiringSoon, c.Kind)
	assert.Equal(t, domain.SeverityWarning, c.Severity)
	assert.Contains(t, c.Description, "10 days")

	_, c = cls.Evaluate(productExpiringIn(t, intPtr(1), 5, 1), today)
	require.NotNil(t, c)
	assert.Contains(t, c.Description, "1 day ")

	status, c = cls.Evaluate(productExpiringIn(t, intPtr(-1), 5, 1), today)
	assert.Equal(t, domain.ExpirationExpired, status)
	require.NotNil(t, c)
	assert.Equal(t, domain.AlertExpired, c.Kind)
	assert.Equal(t, domain.SeverityCritical, c.Severity)
}

func TestStockCheck(t *testing.T) {
	c := StockCheck(productExpiringIn(t, nil, 2, 5))
	require.NotNil(t, c)
	assert.Equal(t, domain.AlertLowStock, c.Kind)
	assert.Equal(t, domain.SeverityWarning, c.Severity)

	assert.Nil(t, StockCheck(productExpiringIn(t, nil, 6, 5)))
}
