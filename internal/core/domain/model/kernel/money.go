package kernel

import (
	"fmt"

	"mealorder/internal/pkg/errs"
)

// Money is a value object representing a currency amount in minor units
// (e.g. paise, cents). Amounts are never negative in this domain; prices and
// totals are snapshots taken at order time and never recomputed.
//
// The zero value (zero amount, empty currency) is invalid and must be
// constructed via NewMoney.
type Money struct {
	amount   int64
	currency string
}

// NewMoney creates a Money value from an amount in minor units and an
// ISO 4217 currency code. The amount must not be negative and the currency
// code must be exactly three uppercase letters.
func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%d is negative", amount),
		)
	}

	if !isCurrencyCode(currency) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"currency",
			fmt.Errorf("%q is not a three-letter ISO 4217 code", currency),
		)
	}

	return Money{amount: amount, currency: currency}, nil
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Amount returns the amount in currency minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// MultiplyBy returns the amount scaled by a non-negative integer factor.
// Used to compute a line total from a unit price and quantity.
func (m Money) MultiplyBy(factor int) (Money, error) {
	if factor < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"factor",
			fmt.Errorf("%d is negative", factor),
		)
	}

	return Money{amount: m.amount * int64(factor), currency: m.currency}, nil
}

// Add returns the sum of two amounts. Both must carry the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"currency",
			fmt.Errorf("cannot add %s to %s", other.currency, m.currency),
		)
	}

	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// IsEqual compares two Money values by amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// String returns a representation such as "1250 INR".
func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}

// Validate returns an error if the Money value was not properly constructed.
func (m Money) Validate() error {
	if m.currency == "" {
		return errs.NewValueIsRequiredError("Money must be created via NewMoney")
	}
	return nil
}
