/*
Package sqlite provides a SQLite-backed amortization.ReportStore.

PURPOSE:
  Writes each computed report into a SQLite database: one row in `reports`
  and one row in `schedule_rows` per ledger row. The `schedule` column keeps
  the two schedules apart ("amortization" and "extra_payment"), the same
  split as the two sheets of a spreadsheet export.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements
  - No DELETE statements
  - A second write with the same report ID fails with ErrDuplicateReport

KEY TABLES:
  reports:       One row per report (parameters, payment, savings)
  schedule_rows: Ledger rows, keyed by (report_id, schedule, period)

PRECISION:
  Money values are stored as decimal strings, never REAL.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's own locking.

USAGE:
  store, err := sqlite.New("./amortization.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  report, err := amortization.Run(ctx, params, store)

SEE ALSO:
  - amortization/store.go: Interface definitions
  - store/memory/memory.go: In-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/amortization-engine/amortization"
)

const (
	dateColumnLayout = "2006-01-02"

	// generated_at is compared as text, so every value has the same width.
	generatedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store implements amortization.ReportStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// each :memory: connection is its own database
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		generated_at TEXT NOT NULL,
		principal TEXT NOT NULL,
		annual_rate TEXT NOT NULL,
		term_years INTEGER NOT NULL,
		payments_per_year INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		extra_payment TEXT NOT NULL,
		payment TEXT NOT NULL,
		baseline_rows INTEGER NOT NULL,
		accelerated_rows INTEGER NOT NULL,
		savings_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_reports_generated_at
		ON reports(generated_at DESC);

	CREATE TABLE IF NOT EXISTS schedule_rows (
		report_id TEXT NOT NULL REFERENCES reports(id),
		schedule TEXT NOT NULL,
		period INTEGER NOT NULL,
		payment_date TEXT NOT NULL,
		payment TEXT NOT NULL,
		interest TEXT NOT NULL,
		principal TEXT NOT NULL,
		extra TEXT NOT NULL,
		balance TEXT NOT NULL,
		PRIMARY KEY (report_id, schedule, period)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// REPORT SINK (amortization.ReportSink interface)
// =============================================================================

// Write persists a report and all its rows atomically.
func (s *Store) Write(ctx context.Context, r amortization.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	savingsJSON, err := json.Marshal(r.Savings)
	if err != nil {
		return fmt.Errorf("failed to encode savings: %w", err)
	}

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	_, err = sqlTx.ExecContext(ctx, `
		INSERT INTO reports
		(id, generated_at, principal, annual_rate, term_years, payments_per_year,
		 start_date, extra_payment, payment, baseline_rows, accelerated_rows, savings_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		string(r.ID),
		r.GeneratedAt.UTC().Format(generatedAtLayout),
		r.Params.Principal.String(),
		r.Params.AnnualRate.String(),
		r.Params.TermYears,
		r.Params.PaymentsPerYear,
		r.Params.StartDate.Time.Format(dateColumnLayout),
		r.Params.ExtraPayment.String(),
		r.Payment.String(),
		r.Baseline.Len(),
		r.Accelerated.Len(),
		string(savingsJSON),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return amortization.ErrDuplicateReport
		}
		return fmt.Errorf("failed to insert report: %w", err)
	}

	stmt, err := sqlTx.PrepareContext(ctx, `
		INSERT INTO schedule_rows
		(report_id, schedule, period, payment_date, payment, interest, principal, extra, balance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare row insert: %w", err)
	}
	defer stmt.Close()

	for _, sched := range []amortization.Schedule{r.Baseline, r.Accelerated} {
		for _, row := range sched.Rows {
			_, err := stmt.ExecContext(ctx,
				string(r.ID),
				string(sched.Kind),
				row.Period,
				row.Date.Time.Format(dateColumnLayout),
				row.Payment.String(),
				row.Interest.String(),
				row.Principal.String(),
				row.Extra.String(),
				row.Balance.String(),
			)
			if err != nil {
				return fmt.Errorf("failed to insert %s row %d: %w", sched.Kind, row.Period, err)
			}
		}
	}

	return sqlTx.Commit()
}

// =============================================================================
// REPORT QUERIES
// =============================================================================

// Get loads a report with both schedules. Summaries are recomputed from
// the stored rows.
func (s *Store) Get(ctx context.Context, id amortization.ReportID) (amortization.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, generated_at, principal, annual_rate, term_years, payments_per_year,
		       start_date, extra_payment, payment, baseline_rows, accelerated_rows, savings_json
		FROM reports WHERE id = ?
	`, string(id))

	info, savingsJSON, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return amortization.Report{}, amortization.ErrReportNotFound
	}
	if err != nil {
		return amortization.Report{}, err
	}

	rep := amortization.Report{
		ID:          info.ID,
		GeneratedAt: info.GeneratedAt,
		Params:      info.Params,
		Payment:     info.Payment,
		Baseline:    amortization.Schedule{Kind: amortization.ScheduleBaseline},
		Accelerated: amortization.Schedule{Kind: amortization.ScheduleAccelerated},
	}
	if savingsJSON.Valid && savingsJSON.String != "" {
		if err := json.Unmarshal([]byte(savingsJSON.String), &rep.Savings); err != nil {
			return amortization.Report{}, fmt.Errorf("failed to decode savings: %w", err)
		}
	}

	if rep.Baseline.Rows, err = s.loadRows(ctx, id, amortization.ScheduleBaseline); err != nil {
		return amortization.Report{}, err
	}
	if rep.Accelerated.Rows, err = s.loadRows(ctx, id, amortization.ScheduleAccelerated); err != nil {
		return amortization.Report{}, err
	}
	rep.BaselineSummary = amortization.Summarize(rep.Baseline)
	rep.AcceleratedSummary = amortization.Summarize(rep.Accelerated)

	return rep, nil
}

// List returns the most recent reports first.
func (s *Store) List(ctx context.Context, limit int) ([]amortization.ReportInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, generated_at, principal, annual_rate, term_years, payments_per_year,
		       start_date, extra_payment, payment, baseline_rows, accelerated_rows, savings_json
		FROM reports
		ORDER BY generated_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	infos := []amortization.ReportInfo{}
	for rows.Next() {
		info, _, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (s *Store) loadRows(ctx context.Context, id amortization.ReportID, kind amortization.ScheduleKind) ([]amortization.LedgerRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT period, payment_date, payment, interest, principal, extra, balance
		FROM schedule_rows
		WHERE report_id = ? AND schedule = ?
		ORDER BY period ASC
	`, string(id), string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s rows: %w", kind, err)
	}
	defer rows.Close()

	var out []amortization.LedgerRow
	for rows.Next() {
		var (
			row                                             amortization.LedgerRow
			date, payment, interest, principal, extra, bal string
		)
		if err := rows.Scan(&row.Period, &date, &payment, &interest, &principal, &extra, &bal); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", kind, err)
		}
		t, err := time.Parse(dateColumnLayout, date)
		if err != nil {
			return nil, fmt.Errorf("invalid row date %q: %w", date, err)
		}
		row.Date = amortization.Date{Time: t}
		row.Payment = parseDecimal(payment)
		row.Interest = parseDecimal(interest)
		row.Principal = parseDecimal(principal)
		row.Extra = parseDecimal(extra)
		row.Balance = parseDecimal(bal)
		out = append(out, row)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(sc scanner) (amortization.ReportInfo, sql.NullString, error) {
	var (
		info        amortization.ReportInfo
		id          string
		generatedAt string
		principal   string
		rate        string
		startDate   string
		extra       string
		payment     string
		savingsJSON sql.NullString
	)

	err := sc.Scan(&id, &generatedAt, &principal, &rate,
		&info.Params.TermYears, &info.Params.PaymentsPerYear,
		&startDate, &extra, &payment, &info.BaselineRows, &info.AcceleratedRows, &savingsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return info, savingsJSON, err
		}
		return info, savingsJSON, fmt.Errorf("failed to scan report: %w", err)
	}

	info.ID = amortization.ReportID(id)
	info.GeneratedAt, err = time.Parse(generatedAtLayout, generatedAt)
	if err != nil {
		info.GeneratedAt, _ = time.Parse(time.RFC3339Nano, generatedAt)
	}
	start, _ := time.Parse(dateColumnLayout, startDate)
	info.Params.StartDate = amortization.Date{Time: start}
	info.Params.Principal = parseDecimal(principal)
	info.Params.AnnualRate = parseDecimal(rate)
	info.Params.ExtraPayment = parseDecimal(extra)
	info.Payment = parseDecimal(payment)

	return info, savingsJSON, nil
}

// Helper functions

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY"))
}
