package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount in cents. Keeping amounts integral avoids
// float drift in balance arithmetic; decimal.Decimal appears only at the
// API boundary.
type Money int64

// MaxMoney caps any single amount at one trillion units.
const MaxMoney Money = 1_000_000_000_000_00

var centScale = decimal.NewFromInt(100)

// MoneyFromDecimal converts a decimal amount of currency units into cents,
// rounding half up to two decimal places.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	cents := d.Mul(centScale).Round(0)

	if !cents.IsInteger() || !cents.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s", ErrAmountTooLarge, d)
	}

	m := Money(cents.IntPart())
	if m > MaxMoney || m < -MaxMoney {
		return 0, fmt.Errorf("%w: %s", ErrAmountTooLarge, d)
	}

	return m, nil
}

// Decimal converts the amount back to currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m > 0
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}
