package kernel

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in currency minor
// units (cents for USD, tiyin for KZT, and so on). Storing minor units as
// an integer keeps arithmetic exact; the domain never computes totals in
// floating point.
//
// The zero value is a valid "zero amount". Money is immutable: arithmetic
// methods return new values.
//
// Example:
//
//	price := kernel.NewMoney(1250) // 12.50 in a two-decimal currency
//	total := price.Mul(3).Add(kernel.NewMoney(99))
type Money struct {
	amount int64
}

// NewMoney creates a Money value from an amount in minor units.
// Negative amounts are permitted at this level; whether a negative amount
// is meaningful (e.g. a discount adjustment) is decided by the caller.
func NewMoney(amount int64) Money {
	return Money{amount: amount}
}

// Zero returns the zero monetary amount.
func Zero() Money {
	return Money{}
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Sub returns the difference of two amounts.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount - other.amount}
}

// Mul returns the amount multiplied by an integer factor, used for
// quantity × unit price calculations.
func (m Money) Mul(factor int) Money {
	return Money{amount: m.amount * int64(factor)}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsEqual reports whether two amounts are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// Covers reports whether m is sufficient to pay expected, allowing a
// shortfall of at most tolerance minor units. Tolerance exists for rounding
// only; business policy never accepts a real shortfall.
func (m Money) Covers(expected Money, tolerance int64) bool {
	return m.amount >= expected.amount-tolerance
}

// String renders the amount with two decimal places for logs and display.
func (m Money) String() string {
	sign := ""
	a := m.amount
	if a < 0 {
		sign = "-"
		a = -a
	}
	return fmt.Sprintf("%s%d.%02d", sign, a/100, a%100)
}

// ValidateNonNegative returns a validation error when the amount is
// negative, for fields where negative money is never meaningful.
func (m Money) ValidateNonNegative(paramName string) error {
	if m.amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%d is negative", m.amount))
	}
	return nil
}
