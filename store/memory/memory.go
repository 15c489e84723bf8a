// Package memory provides an in-memory amortization.ReportStore.
package memory

import (
	"context"
	"sync"

	"github.com/warp/amortization-engine/amortization"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements amortization.ReportStore in process memory.
type Memory struct {
	mu      sync.RWMutex
	reports map[amortization.ReportID]amortization.Report
	order   []amortization.ReportID
}

func NewMemory() *Memory {
	return &Memory{
		reports: make(map[amortization.ReportID]amortization.Report),
	}
}

// Write stores a report. Append-only.
func (m *Memory) Write(_ context.Context, r amortization.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.reports[r.ID]; exists {
		return amortization.ErrDuplicateReport
	}
	m.reports[r.ID] = r
	m.order = append(m.order, r.ID)
	return nil
}

// Get returns a stored report.
func (m *Memory) Get(_ context.Context, id amortization.ReportID) (amortization.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reports[id]
	if !ok {
		return amortization.Report{}, amortization.ErrReportNotFound
	}
	return r, nil
}

// List returns reports newest first.
func (m *Memory) List(_ context.Context, limit int) ([]amortization.ReportInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.order)
	if limit > 0 && limit < n {
		n = limit
	}
	infos := make([]amortization.ReportInfo, 0, n)
	for i := len(m.order) - 1; i >= 0 && len(infos) < n; i-- {
		infos = append(infos, m.reports[m.order[i]].Info())
	}
	return infos, nil
}

// Len returns the number of stored reports.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}
