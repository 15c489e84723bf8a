/*
errors.go - Centralized error types for the amortization engine

ERROR CATEGORIES:
  1. Input errors - Parameters rejected before any computation
  2. Formula errors - Payment formula cannot produce a finite payment
  3. Store errors - Report persistence failures

A zero periodic rate is NOT an error: the payment degenerates to
principal / periodCount.

USAGE:
  if errors.Is(err, amortization.ErrInvalidInput) {
      var ie *amortization.InvalidInputError
      errors.As(err, &ie) // ie.Field names the offending parameter
  }

SEE ALSO:
  - types.go: LoanParameters.Validate
  - payment.go: ComputePayment
*/
package amortization

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is returned for non-positive principal, negative rate,
	// non-positive term or frequency, or an unparseable date.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNonAmortizing is returned when 1 - (1+r)^-n <= 0.
	ErrNonAmortizing = errors.New("loan does not amortize")

	// ErrReportNotFound is returned when a report ID is unknown to the store.
	ErrReportNotFound = errors.New("report not found")

	// ErrDuplicateReport is returned when a report ID was already written.
	ErrDuplicateReport = errors.New("duplicate report id")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidInputError names the parameter that failed validation.
type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// NonAmortizingError carries the periodic rate and period count for which
// the payment formula has no finite positive solution.
type NonAmortizingError struct {
	PeriodicRate decimal.Decimal
	Periods      int
}

func (e *NonAmortizingError) Error() string {
	return fmt.Sprintf("loan does not amortize: periodic rate %s over %d periods",
		e.PeriodicRate, e.Periods)
}

func (e *NonAmortizingError) Unwrap() error {
	return ErrNonAmortizing
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNonAmortizing) ||
		errors.Is(err, ErrDuplicateReport)
}

// IsNotFound returns true if the error indicates a missing report.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrReportNotFound)
}
