package domain

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with exact decimal arithmetic.
// Money is immutable - all operations return new instances.
type Money struct {
	amount decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// NewMoneyFromDecimal creates Money from a decimal string such as "19.99".
func NewMoneyFromDecimal(s string) (*Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, ErrInvalidMoney
	}
	return &Money{amount: d}, nil
}

// MustMoney is NewMoneyFromDecimal for literals known to be valid.
func MustMoney(s string) *Money {
	m, err := NewMoneyFromDecimal(s)
	if err != nil {
		panic("money: invalid literal " + s)
	}
	return m
}

// MoneyFromDecimal wraps an existing decimal.
func MoneyFromDecimal(d decimal.Decimal) *Money {
	return &Money{amount: d}
}

// NewMoneyFromRat creates Money from a big.Rat, as read from NUMERIC columns.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return Zero()
	}
	// NUMERIC carries at most nine fractional digits.
	d, err := decimal.NewFromString(rat.FloatString(9))
	if err != nil {
		return Zero()
	}
	return &Money{amount: d}
}

// Zero returns a Money instance representing zero.
func Zero() *Money {
	return &Money{amount: decimal.Zero}
}

func (m *Money) IsNegative() bool { return m.amount.IsNegative() }
func (m *Money) IsPositive() bool { return m.amount.IsPositive() }

// WholeCents reports whether the amount has no more than two fractional digits.
// Trailing zeros do not count: 10.500 is whole cents.
func (m *Money) WholeCents() bool {
	return m.amount.Equal(m.amount.Round(2))
}

// GreaterThan returns true if m is greater than other.
func (m *Money) GreaterThan(other *Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// LessThan returns true if m is less than other.
func (m *Money) LessThan(other *Money) bool {
	return m.amount.LessThan(other.amount)
}

// Equals returns true if m equals other. Scale is ignored: 10 equals 10.00.
func (m *Money) Equals(other *Money) bool {
	if m == nil || other == nil {
		return m == nil && other == nil
	}
	return m.amount.Equal(other.amount)
}

// PercentChangeFrom returns |m - previous| / previous * 100.
// The caller must ensure previous is positive.
func (m *Money) PercentChangeFrom(previous *Money) decimal.Decimal {
	return m.amount.Sub(previous.amount).Abs().Div(previous.amount).Mul(hundred)
}

// Decimal returns the underlying decimal value.
func (m *Money) Decimal() decimal.Decimal {
	return m.amount
}

// Rat returns the amount as a big.Rat for NUMERIC persistence.
func (m *Money) Rat() *big.Rat {
	return m.amount.Rat()
}

// String returns the amount with two fractional digits, e.g. "19.99".
func (m *Money) String() string {
	return m.amount.StringFixed(2)
}

