package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxAmountScale is the number of fractional digits money is kept to
	MaxAmountScale = 2
	// MaxAmountIntegerDigits bounds a single amount below one trillion
	MaxAmountIntegerDigits = 12

	maxAmountInputLength = 32
)

// maxAmount is the exclusive upper bound of a single amount
var maxAmount = decimal.New(1, MaxAmountIntegerDigits)

// ValidateAmount ensures a ledger amount is strictly positive, whole cents
// and below 10^MaxAmountIntegerDigits.
// The exponent is bounded before any comparison, so oversized values
// such as 1e50000000 are rejected without being expanded.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	exp := amount.Exponent()
	if exp < -maxAmountInputLength {
		return fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, MaxAmountScale)
	}
	if exp >= MaxAmountIntegerDigits || amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("%w: exceeds %d integer digits", ErrInvalidAmount, MaxAmountIntegerDigits)
	}
	// Trailing zeros like 12.340 are still whole cents
	if exp < -MaxAmountScale && !amount.Equal(amount.Truncate(MaxAmountScale)) {
		return fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, MaxAmountScale)
	}
	return nil
}

// ParseAmount parses a decimal amount received at a boundary.
// Non-numeric input and amounts failing ValidateAmount both fail with ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if len(s) > maxAmountInputLength {
		return decimal.Zero, fmt.Errorf("%w: input too long", ErrInvalidAmount)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}
