package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// quantityScale is the number of fractional digits a quantity may carry.
	quantityScale = 1
	// quantityIntDigits is the integer part that fits numeric(10,1).
	quantityIntDigits = 9
)

// ValidateQuantity checks a requested line quantity against max.
func ValidateQuantity(q decimal.NullDecimal, max decimal.Decimal) (decimal.Decimal, error) {
	if !q.Valid {
		return decimal.Zero, &ValidationError{Field: "quantity", Message: "quantity is required"}
	}
	v := q.Decimal
	if !v.IsPositive() {
		return decimal.Zero, &ValidationError{Field: "quantity", Message: "quantity must be greater than 0"}
	}
	if v.Exponent() < -quantityScale {
		return decimal.Zero, &ValidationError{Field: "quantity", Message: "quantity may have at most one decimal place"}
	}
	// digit bound first, GreaterThan rescales to a common exponent
	if v.NumDigits()+int(v.Exponent()) > quantityIntDigits || v.GreaterThan(max) {
		return decimal.Zero, &ValidationError{Field: "quantity", Message: fmt.Sprintf("maximum quantity is %s", max)}
	}
	return v, nil
}
