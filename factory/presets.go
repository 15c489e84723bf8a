package factory

import (
	"github.com/shopspring/decimal"
)

// Preset is a named, ready-made loan.
type Preset struct {
	ID          string
	Description string
	Loan        LoanJSON
}

// Presets returns the built-in loans in display order. They cover a plain
// mortgage, an accelerated payoff, a quarterly cadence and a zero rate.
func Presets() []Preset {
	return []Preset{
		{
			ID:          "mortgage-30y",
			Description: "Fixed 6% mortgage with no extra payment",
			Loan: LoanJSON{
				Name:            "30-Year Mortgage",
				Principal:       decimalPtr("100000"),
				AnnualRate:      decimalPtr("6"),
				TermYears:       30,
				PaymentsPerYear: intPtr(12),
				StartDate:       "01/01/2025",
				ExtraPayment:    decimalPtr("0"),
			},
		},
		{
			ID:          "mortgage-30y-extra",
			Description: "Same mortgage paid down with 200 extra every month",
			Loan: LoanJSON{
				Name:            "30-Year Mortgage + 200/month",
				Principal:       decimalPtr("100000"),
				AnnualRate:      decimalPtr("6"),
				TermYears:       30,
				PaymentsPerYear: intPtr(12),
				StartDate:       "01/01/2025",
				ExtraPayment:    decimalPtr("200"),
			},
		},
		{
			ID:          "quarterly-15y",
			Description: "4.5% loan reported every third month",
			Loan: LoanJSON{
				Name:            "15-Year Quarterly",
				Principal:       decimalPtr("50000"),
				AnnualRate:      decimalPtr("4.5"),
				TermYears:       15,
				PaymentsPerYear: intPtr(4),
				StartDate:       "03/31/2025",
				ExtraPayment:    decimalPtr("0"),
			},
		},
		{
			ID:          "car-zero-rate",
			Description: "0% dealer financing over one year",
			Loan: LoanJSON{
				Name:            "Zero-Rate Car Loan",
				Principal:       decimalPtr("12000"),
				AnnualRate:      decimalPtr("0"),
				TermYears:       1,
				PaymentsPerYear: intPtr(12),
				StartDate:       "06/15/2025",
				ExtraPayment:    decimalPtr("0"),
			},
		},
	}
}

// FindPreset returns the preset with the given ID.
func FindPreset(id string) (Preset, bool) {
	for _, p := range Presets() {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(n int) *int {
	return &n
}
