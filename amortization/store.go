/*
store.go - Report sink and store interfaces

PURPOSE:
  The amortization core hands its output to a sink: an ordered, fully
  computed pair of schedules plus their summaries. Sinks decide how to
  render or persist it (markdown, SQLite, JSON over HTTP).

APPEND-ONLY CONTRACT:
  - Write(): the ONLY write operation
  - NO Update() or Delete() methods exist
  - Writing the same report ID twice returns ErrDuplicateReport

IMPLEMENTATIONS:
  - store/memory/memory.go: In-memory, for tests and the default server
  - store/sqlite/sqlite.go: SQLite file, one table row per ledger row

SEE ALSO:
  - report.go: Report type
*/
package amortization

import "context"

// ReportSink accepts computed reports.
type ReportSink interface {
	Write(ctx context.Context, r Report) error
}

// ReportStore is a sink that can read its reports back.
type ReportStore interface {
	ReportSink

	// Get returns the report with the given ID or ErrReportNotFound.
	Get(ctx context.Context, id ReportID) (Report, error)

	// List returns the most recent reports first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]ReportInfo, error)
}
