package amortization

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportID identifies a generated report.
type ReportID string

// NewReportID returns a fresh random report ID.
func NewReportID() ReportID {
	return ReportID(uuid.NewString())
}

// Report is everything a sink receives for one computation.
type Report struct {
	ID                 ReportID
	GeneratedAt        time.Time
	Params             LoanParameters
	Payment            decimal.Decimal
	Baseline           Schedule
	Accelerated        Schedule
	BaselineSummary    Summary
	AcceleratedSummary Summary
	Savings            Savings
}

// ReportInfo is the listing view of a stored report.
type ReportInfo struct {
	ID              ReportID
	GeneratedAt     time.Time
	Params          LoanParameters
	Payment         decimal.Decimal
	BaselineRows    int
	AcceleratedRows int
}

// Info returns the listing view of the report.
func (r Report) Info() ReportInfo {
	return ReportInfo{
		ID:              r.ID,
		GeneratedAt:     r.GeneratedAt,
		Params:          r.Params,
		Payment:         r.Payment,
		BaselineRows:    r.Baseline.Len(),
		AcceleratedRows: r.Accelerated.Len(),
	}
}

// NewReport wraps a result with summaries, savings and a new ID.
func NewReport(res Result) (Report, error) {
	savings, err := CompareSavings(res.Params)
	if err != nil {
		return Report{}, err
	}
	return Report{
		ID:                 NewReportID(),
		GeneratedAt:        time.Now().UTC(),
		Params:             res.Params,
		Payment:            res.Payment,
		Baseline:           res.Baseline,
		Accelerated:        res.Accelerated,
		BaselineSummary:    Summarize(res.Baseline),
		AcceleratedSummary: Summarize(res.Accelerated),
		Savings:            savings,
	}, nil
}

// Run validates params, computes both schedules and writes the report to
// every sink in order. The first sink error stops delivery.
func Run(ctx context.Context, params LoanParameters, sinks ...ReportSink) (Report, error) {
	res, err := NewGenerator(params).Generate()
	if err != nil {
		return Report{}, err
	}
	rep, err := NewReport(res)
	if err != nil {
		return Report{}, err
	}
	for _, sink := range sinks {
		if err := sink.Write(ctx, rep); err != nil {
			return Report{}, fmt.Errorf("failed to write report %s: %w", rep.ID, err)
		}
	}
	return rep, nil
}
