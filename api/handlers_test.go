/*
handlers_test.go - HTTP tests for the amortization API

Tests for:
- Payment calculation and validation errors
- Schedule generation, caching and persistence
- Report listing and lookup
- Preset scenarios
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/amortization-engine/cache"
	"github.com/warp/amortization-engine/store/memory"
	"github.com/warp/amortization-engine/store/sqlite"
)

const mortgageJSON = `{
	"principal": 100000,
	"annual_rate": 6,
	"term_years": 30,
	"payments_per_year": 12,
	"start_date": "01/01/2025",
	"extra_payment": 200
}`

func newTestServer(t *testing.T) (*httptest.Server, *memory.Memory) {
	t.Helper()
	store := memory.NewMemory()
	srv := httptest.NewServer(NewRouter(NewHandler(store, cache.NewMemory(time.Minute))))
	t.Cleanup(srv.Close)
	return srv, store
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// =============================================================================
// HEALTH / PAYMENT
// =============================================================================

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := get(t, srv, "/api/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[map[string]string](t, resp)["status"])
}

func TestCalculatePayment(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := post(t, srv, "/api/payment", `{"principal": 100000, "annual_rate": 6, "term_years": 30}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[PaymentResponse](t, resp)
	assert.Equal(t, "599.55", out.Payment)
	assert.Equal(t, "0.005", out.PeriodicRate)
	assert.Equal(t, 360, out.PeriodCount)
}

func TestCalculatePayment_ZeroRate(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := post(t, srv, "/api/payment", `{"principal": "1200", "annual_rate": "0", "term_years": 1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "100.00", decode[PaymentResponse](t, resp).Payment)
}

func TestCalculatePayment_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"malformed body", `{"principal": `, ""},
		{"missing principal", `{"annual_rate": 6, "term_years": 30}`, "principal"},
		{"negative rate", `{"principal": 1000, "annual_rate": -1, "term_years": 30}`, "annual_rate"},
		{"zero term", `{"principal": 1000, "annual_rate": 6, "term_years": 0}`, "term_years"},
		{"bad frequency", `{"principal": 1000, "annual_rate": 6, "term_years": 1, "payments_per_year": 7}`, "payments_per_year"},
	}

	srv, _ := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, "/api/payment", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.field, decode[ErrorResponse](t, resp).Field)
		})
	}
}

// =============================================================================
// SCHEDULES
// =============================================================================

func TestCreateSchedule(t *testing.T) {
	srv, store := newTestServer(t)

	resp := post(t, srv, "/api/schedules", mortgageJSON)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	rep := decode[ReportDTO](t, resp)
	assert.NotEmpty(t, rep.ID)
	assert.False(t, rep.Cached)
	assert.Equal(t, "599.55", rep.Payment)

	assert.Equal(t, "amortization", rep.Baseline.Kind)
	assert.Equal(t, "Amortization Schedule", rep.Baseline.Title)
	require.NotEmpty(t, rep.Baseline.Rows)
	first := rep.Baseline.Rows[0]
	assert.Equal(t, RowDTO{
		Period: 1, Date: "01/01/2025", Payment: "599.55", Interest: "500.00",
		Principal: "99.55", Extra: "200.00", Balance: "99700.45",
	}, first)

	last := rep.Baseline.Rows[len(rep.Baseline.Rows)-1]
	assert.Equal(t, "0.00", last.Balance)
	assert.True(t, rep.Baseline.Summary.PaidOff)
	assert.Less(t, len(rep.Baseline.Rows), 360)

	assert.Equal(t, "extra_payment", rep.Accelerated.Kind)
	assert.Equal(t, "200.00", rep.Accelerated.Rows[0].Extra)
	assert.Greater(t, rep.Savings.MonthsSaved, 0)

	assert.Equal(t, 1, store.Len())
}

func TestCreateSchedule_CachedByParameters(t *testing.T) {
	srv, store := newTestServer(t)

	first := decode[ReportDTO](t, post(t, srv, "/api/schedules", mortgageJSON))

	// GIVEN: the same loan written with different number formatting
	resp := post(t, srv, "/api/schedules", `{
		"principal": "100000.00", "annual_rate": "6.0", "term_years": 30,
		"start_date": "01/01/2025", "extra_payment": "200"
	}`)

	// THEN: the stored report is returned, nothing new is written
	require.Equal(t, http.StatusOK, resp.StatusCode)
	second := decode[ReportDTO](t, resp)
	assert.True(t, second.Cached)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Baseline.Rows, second.Baseline.Rows)
	assert.Equal(t, 1, store.Len())
}

func TestCreateSchedule_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"malformed body", `not json`, ""},
		{"bad date", `{"principal": 1000, "annual_rate": 6, "term_years": 1, "start_date": "2025-01-01"}`, "start_date"},
		{"missing date", `{"principal": 1000, "annual_rate": 6, "term_years": 1}`, "start_date"},
		{"negative extra", `{"principal": 1000, "annual_rate": 6, "term_years": 1, "start_date": "01/01/2025", "extra_payment": -5}`, "extra_payment"},
	}

	srv, store := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, "/api/schedules", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.field, decode[ErrorResponse](t, resp).Field)
		})
	}
	assert.Equal(t, 0, store.Len())
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (brokenCache) Set(context.Context, string, []byte) error  { return errors.New("redis down") }

func TestCreateSchedule_CacheFailureIsNotFatal(t *testing.T) {
	store := memory.NewMemory()
	srv := httptest.NewServer(NewRouter(NewHandler(store, brokenCache{})))
	defer srv.Close()

	resp := post(t, srv, "/api/schedules", mortgageJSON)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, store.Len())
}

func TestCreateSchedule_StaleCacheEntryRecomputes(t *testing.T) {
	c := cache.NewMemory(time.Minute)

	store := memory.NewMemory()
	h := NewHandler(store, c)
	srv := httptest.NewServer(NewRouter(h))
	defer srv.Close()

	first := decode[ReportDTO](t, post(t, srv, "/api/schedules", mortgageJSON))

	// GIVEN: the cache points at a report the store no longer has
	h.Store = memory.NewMemory()

	resp := post(t, srv, "/api/schedules", mortgageJSON)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEqual(t, first.ID, decode[ReportDTO](t, resp).ID)
}

// =============================================================================
// REPORTS
// =============================================================================

func TestReports_ListAndGet(t *testing.T) {
	srv, _ := newTestServer(t)

	older := decode[ReportDTO](t, post(t, srv, "/api/schedules", mortgageJSON))
	newer := decode[ReportDTO](t, post(t, srv, "/api/schedules",
		`{"principal": 5000, "annual_rate": 3, "term_years": 2, "start_date": "02/01/2025"}`))

	resp := get(t, srv, "/api/reports")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]ReportInfoDTO](t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
	assert.Equal(t, 24, list[0].BaselineRows)

	limited := decode[[]ReportInfoDTO](t, get(t, srv, "/api/reports?limit=1"))
	assert.Len(t, limited, 1)

	got := get(t, srv, "/api/reports/"+older.ID)
	require.Equal(t, http.StatusOK, got.StatusCode)
	rep := decode[ReportDTO](t, got)
	assert.Equal(t, older.Baseline.Rows, rep.Baseline.Rows)
	assert.Equal(t, older.Savings, rep.Savings)
}

func TestReports_Errors(t *testing.T) {
	srv, _ := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/api/reports/does-not-exist").StatusCode)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/reports?limit=abc").StatusCode)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/reports?limit=0").StatusCode)

	empty := decode[[]ReportInfoDTO](t, get(t, srv, "/api/reports"))
	assert.Empty(t, empty)
}

func TestReports_SQLiteStore(t *testing.T) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer store.Close()

	srv := httptest.NewServer(NewRouter(NewHandler(store, nil)))
	defer srv.Close()

	created := decode[ReportDTO](t, post(t, srv, "/api/schedules", mortgageJSON))

	resp := get(t, srv, "/api/reports/"+created.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[ReportDTO](t, resp)
	assert.Equal(t, created.Baseline, got.Baseline)
	assert.Equal(t, created.Accelerated, got.Accelerated)
	assert.Equal(t, created.Payment, got.Payment)
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestScenarios_ListAndRun(t *testing.T) {
	srv, _ := newTestServer(t)

	list := decode[[]ScenarioDTO](t, get(t, srv, "/api/scenarios"))
	assert.Len(t, list, len(Scenarios()))

	resp := post(t, srv, "/api/scenarios/car-zero-rate", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	rep := decode[ReportDTO](t, resp)
	assert.Equal(t, "1000.00", rep.Payment)
	assert.Len(t, rep.Baseline.Rows, 12)
	assert.Equal(t, "06/15/2025", rep.Baseline.Rows[0].Date)

	quarterly := decode[ReportDTO](t, post(t, srv, "/api/scenarios/quarterly-15y", ""))
	assert.Equal(t, 3, quarterly.Baseline.Rows[1].Period-quarterly.Baseline.Rows[0].Period)

	assert.Equal(t, http.StatusNotFound, post(t, srv, "/api/scenarios/nope", "").StatusCode)
}
