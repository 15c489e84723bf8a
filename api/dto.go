/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the amortization model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY VALUES:
  Every amount is a string rounded to two decimals ("599.55"). Clients
  that need the unrounded figures read the stored report directly.

TYPES:
  Payment:   PaymentRequest, PaymentResponse
  Schedules: ReportDTO, ScheduleDTO, RowDTO, SummaryDTO, SavingsDTO
  Listing:   ReportInfoDTO
  Scenarios: ScenarioDTO

VALIDATION:
  Validation is done in handlers and in the factory, not in DTOs.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/loan.go: LoanJSON request body
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/amortization-engine/amortization"
	"github.com/warp/amortization-engine/factory"
	"github.com/warp/amortization-engine/report"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// PaymentRequest asks for the level payment of a loan.
type PaymentRequest struct {
	Principal       *decimal.Decimal `json:"principal"`
	AnnualRate      *decimal.Decimal `json:"annual_rate"`
	TermYears       int              `json:"term_years"`
	PaymentsPerYear *int             `json:"payments_per_year,omitempty"`
}

// PaymentResponse is the level payment with the values it was derived from.
type PaymentResponse struct {
	Payment      string `json:"payment"`
	PeriodicRate string `json:"periodic_rate"`
	PeriodCount  int    `json:"period_count"`
}

// RowDTO is one ledger row.
type RowDTO struct {
	Period    int    `json:"period"`
	Date      string `json:"date"`
	Payment   string `json:"payment"`
	Interest  string `json:"interest"`
	Principal string `json:"principal"`
	Extra     string `json:"extra"`
	Balance   string `json:"balance"`
}

// SummaryDTO totals one schedule.
type SummaryDTO struct {
	Rows           int    `json:"rows"`
	TotalPayment   string `json:"total_payment"`
	TotalInterest  string `json:"total_interest"`
	TotalPrincipal string `json:"total_principal"`
	TotalExtra     string `json:"total_extra"`
	FinalBalance   string `json:"final_balance"`
	PaidOff        bool   `json:"paid_off"`
	PayoffDate     string `json:"payoff_date,omitempty"`
}

// ScheduleDTO is one schedule with its totals.
type ScheduleDTO struct {
	Kind    string     `json:"kind"`
	Title   string     `json:"title"`
	Summary SummaryDTO `json:"summary"`
	Rows    []RowDTO   `json:"rows"`
}

// SavingsDTO compares the loan with and without the extra payment.
type SavingsDTO struct {
	MonthsWithoutExtra int    `json:"months_without_extra"`
	MonthsWithExtra    int    `json:"months_with_extra"`
	MonthsSaved        int    `json:"months_saved"`
	InterestWithout    string `json:"interest_without_extra"`
	InterestWith       string `json:"interest_with_extra"`
	InterestSaved      string `json:"interest_saved"`
	PayoffWithoutExtra string `json:"payoff_without_extra,omitempty"`
	PayoffWithExtra    string `json:"payoff_with_extra,omitempty"`
}

// ReportDTO is the full response for a computed schedule.
type ReportDTO struct {
	ID          string           `json:"id"`
	GeneratedAt string           `json:"generated_at"`
	Loan        factory.LoanJSON `json:"loan"`
	Payment     string           `json:"payment"`
	Baseline    ScheduleDTO      `json:"amortization"`
	Accelerated ScheduleDTO      `json:"extra_payment"`
	Savings     SavingsDTO       `json:"savings"`
	Cached      bool             `json:"cached"`
}

// ReportInfoDTO is a report in listings.
type ReportInfoDTO struct {
	ID              string           `json:"id"`
	GeneratedAt     string           `json:"generated_at"`
	Loan            factory.LoanJSON `json:"loan"`
	Payment         string           `json:"payment"`
	BaselineRows    int              `json:"amortization_rows"`
	AcceleratedRows int              `json:"extra_payment_rows"`
}

// ScenarioDTO describes a preset loan.
type ScenarioDTO struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Loan        factory.LoanJSON `json:"loan"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toReportDTO(f *factory.LoanFactory, r amortization.Report, cached bool) ReportDTO {
	return ReportDTO{
		ID:          string(r.ID),
		GeneratedAt: r.GeneratedAt.Format(time.RFC3339),
		Loan:        f.ToJSON("", r.Params),
		Payment:     report.Amount(r.Payment),
		Baseline:    toScheduleDTO(r.Baseline, r.BaselineSummary),
		Accelerated: toScheduleDTO(r.Accelerated, r.AcceleratedSummary),
		Savings:     toSavingsDTO(r.Savings),
		Cached:      cached,
	}
}

func toReportInfoDTO(f *factory.LoanFactory, info amortization.ReportInfo) ReportInfoDTO {
	return ReportInfoDTO{
		ID:              string(info.ID),
		GeneratedAt:     info.GeneratedAt.Format(time.RFC3339),
		Loan:            f.ToJSON("", info.Params),
		Payment:         report.Amount(info.Payment),
		BaselineRows:    info.BaselineRows,
		AcceleratedRows: info.AcceleratedRows,
	}
}

func toScheduleDTO(s amortization.Schedule, sum amortization.Summary) ScheduleDTO {
	rows := make([]RowDTO, len(s.Rows))
	for i, row := range s.Rows {
		rows[i] = RowDTO{
			Period:    row.Period,
			Date:      row.Date.String(),
			Payment:   report.Amount(row.Payment),
			Interest:  report.Amount(row.Interest),
			Principal: report.Amount(row.Principal),
			Extra:     report.Amount(row.Extra),
			Balance:   report.Amount(row.Balance),
		}
	}
	return ScheduleDTO{
		Kind:  string(s.Kind),
		Title: s.Kind.Title(),
		Summary: SummaryDTO{
			Rows:           sum.Rows,
			TotalPayment:   report.Amount(sum.TotalPayment),
			TotalInterest:  report.Amount(sum.TotalInterest),
			TotalPrincipal: report.Amount(sum.TotalPrincipal),
			TotalExtra:     report.Amount(sum.TotalExtra),
			FinalBalance:   report.Amount(sum.FinalBalance),
			PaidOff:        sum.PaidOff,
			PayoffDate:     sum.PayoffDate.String(),
		},
		Rows: rows,
	}
}

func toSavingsDTO(s amortization.Savings) SavingsDTO {
	return SavingsDTO{
		MonthsWithoutExtra: s.MonthsWithoutExtra,
		MonthsWithExtra:    s.MonthsWithExtra,
		MonthsSaved:        s.MonthsSaved,
		InterestWithout:    report.Amount(s.InterestWithout),
		InterestWith:       report.Amount(s.InterestWith),
		InterestSaved:      report.Amount(s.InterestSaved),
		PayoffWithoutExtra: s.PayoffWithoutExtra.String(),
		PayoffWithExtra:    s.PayoffWithExtra.String(),
	}
}
