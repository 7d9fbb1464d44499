package kernel

import (
	"fmt"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed indicates a Money value was not created through
// one of the constructor functions.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoneyFromDecimal, MoneyFromString, or MoneyFromCents")

// Money is a non-negative monetary amount rounded to cent precision.
// Order totals and price snapshots are expressed in Money so that
// arithmetic on amounts never goes through binary floating point.
//
// The zero value is invalid; construct through one of the factory
// functions. Money is immutable: arithmetic methods return new values.
type Money struct {
	amount decimal.Decimal

	guard guard.ConstructorGuard
}

// Zero is a constructed Money of amount 0.00.
func Zero() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// NewMoneyFromDecimal creates a Money from a decimal amount, rounding to
// cents. Negative amounts are rejected.
func NewMoneyFromDecimal(amount decimal.Decimal) (Money, error) {
	rounded := amount.Round(2)
	if rounded.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", rounded.String()))
	}
	return Money{amount: rounded, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromString parses a decimal string such as "19.99".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoneyFromDecimal(amount)
}

// MoneyFromCents creates a Money from an integer number of cents, as stored
// in postgres.
func MoneyFromCents(cents int64) (Money, error) {
	return NewMoneyFromDecimal(decimal.New(cents, -2))
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Decimal returns the underlying decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Cents returns the amount as an integer number of cents.
func (m Money) Cents() int64 {
	return m.amount.Mul(decimal.New(100, 0)).IntPart()
}

// String returns the amount with exactly two decimal places, e.g. "38.75".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// MulInt returns the amount multiplied by a whole quantity.
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.New(int64(n), 0)), guard: guard.NewConstructorGuard()}
}

// MulRate multiplies by a fractional rate and rounds to cents, used for tax.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).Round(2), guard: guard.NewConstructorGuard()}
}

// GreaterThan reports whether m exceeds other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// IsEqual reports whether two amounts are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}
