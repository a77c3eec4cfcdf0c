package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrValidation    = errors.New("validation")
	ErrNotFound      = errors.New("not found")
	ErrLimitExceeded = errors.New("limit exceeded")
)

// ValidationError describes malformed or out-of-range input for one field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// LimitExceededError is returned when a merge would push a line over Max.
// Remaining is how much can still be added to the existing entry.
type LimitExceededError struct {
	Max       decimal.Decimal
	Remaining decimal.Decimal
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("maximum quantity is %s, you can add %s more", e.Max, e.Remaining)
}

func (e *LimitExceededError) Is(target error) bool { return target == ErrLimitExceeded }
