/*
Package factory provides JSON to Go loan parameter conversion.

PURPOSE:
  Converts JSON loan definitions into validated amortization.LoanParameters.
  The same shape is accepted by the HTTP API, the CLI -config flag and the
  preset scenarios.

JSON SCHEMA:
  {
    "name": "30-year mortgage",
    "principal": 100000,
    "annual_rate": 6,
    "term_years": 30,
    "payments_per_year": 12,
    "start_date": "01/01/2025",
    "extra_payment": 200
  }

  Numbers may also be given as strings ("100000.00"); they are parsed as
  decimals, never as floats.

DEFAULTS:
  - payments_per_year: 12 when omitted
  - extra_payment:     0 when omitted

VALIDATION:
  Malformed or missing values are rejected with amortization.ErrInvalidInput.
  Nothing is corrected.

SEE ALSO:
  - amortization/types.go: LoanParameters.Validate
  - presets.go: Built-in loans in the same shape
*/
package factory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/warp/amortization-engine/amortization"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// LoanJSON is the JSON representation of a loan.
type LoanJSON struct {
	Name            string           `json:"name,omitempty"`
	Principal       *decimal.Decimal `json:"principal"`
	AnnualRate      *decimal.Decimal `json:"annual_rate"`
	TermYears       int              `json:"term_years"`
	PaymentsPerYear *int             `json:"payments_per_year,omitempty"`
	StartDate       string           `json:"start_date"`
	ExtraPayment    *decimal.Decimal `json:"extra_payment,omitempty"`
}

// DefaultPaymentsPerYear is used when payments_per_year is omitted.
const DefaultPaymentsPerYear = 12

// =============================================================================
// LOAN FACTORY
// =============================================================================

// LoanFactory converts JSON loans to LoanParameters.
type LoanFactory struct{}

// NewLoanFactory creates a new loan factory.
func NewLoanFactory() *LoanFactory {
	return &LoanFactory{}
}

// ParseLoan parses a JSON string into validated parameters.
func (f *LoanFactory) ParseLoan(jsonStr string) (amortization.LoanParameters, error) {
	var lj LoanJSON
	if err := json.Unmarshal([]byte(jsonStr), &lj); err != nil {
		return amortization.LoanParameters{}, fmt.Errorf("%w: failed to parse loan JSON: %v", amortization.ErrInvalidInput, err)
	}
	return f.FromJSON(lj)
}

// LoadFile reads a loan definition from a JSON file.
func (f *LoanFactory) LoadFile(path string) (amortization.LoanParameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return amortization.LoanParameters{}, fmt.Errorf("failed to read loan file %q: %w", path, err)
	}
	return f.ParseLoan(string(data))
}

// FromJSON converts LoanJSON to validated LoanParameters.
func (f *LoanFactory) FromJSON(lj LoanJSON) (amortization.LoanParameters, error) {
	if lj.Principal == nil {
		return amortization.LoanParameters{}, missing("principal")
	}
	if lj.AnnualRate == nil {
		return amortization.LoanParameters{}, missing("annual_rate")
	}
	if lj.StartDate == "" {
		return amortization.LoanParameters{}, missing("start_date")
	}

	start, err := amortization.ParseDate(lj.StartDate)
	if err != nil {
		return amortization.LoanParameters{}, err
	}

	paymentsPerYear := DefaultPaymentsPerYear
	if lj.PaymentsPerYear != nil {
		paymentsPerYear = *lj.PaymentsPerYear
	}

	extra := decimal.Zero
	if lj.ExtraPayment != nil {
		extra = *lj.ExtraPayment
	}

	return amortization.NewLoanParameters(*lj.Principal, *lj.AnnualRate, lj.TermYears, paymentsPerYear, start, extra)
}

// ToJSON converts parameters back to their JSON representation.
func (f *LoanFactory) ToJSON(name string, p amortization.LoanParameters) LoanJSON {
	principal, rate, extra, ppy := p.Principal, p.AnnualRate, p.ExtraPayment, p.PaymentsPerYear
	return LoanJSON{
		Name:            name,
		Principal:       &principal,
		AnnualRate:      &rate,
		TermYears:       p.TermYears,
		PaymentsPerYear: &ppy,
		StartDate:       p.StartDate.String(),
		ExtraPayment:    &extra,
	}
}

func missing(field string) error {
	return &amortization.InvalidInputError{Field: field, Value: nil, Reason: "is required"}
}
