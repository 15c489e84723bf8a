/*
handlers.go - HTTP API handlers for the amortization engine

PURPOSE:
  Exposes the payment calculator and the schedule generator via REST API.
  Handles HTTP request/response, JSON serialization, and delegates to the
  amortization package.

ENDPOINTS:
  Health:
    GET    /api/health                 Liveness check

  Payment:
    POST   /api/payment                Level payment for a loan

  Schedules:
    POST   /api/schedules              Compute, store and return both schedules

  Reports:
    GET    /api/reports                List stored reports (?limit=N)
    GET    /api/reports/{id}           Full stored report

  Scenarios:
    GET    /api/scenarios              List preset loans
    POST   /api/scenarios/{id}         Compute a preset loan

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Report persistence (memory or SQLite)
  - Cache: Loan key to report ID (memory or Redis)
  - LoanFactory: JSON to LoanParameters conversion

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (factory + LoanParameters.Validate)
  3. Look up the loan key in the cache
  4. On a miss, run the generator and write the report to the store
  5. Serialize response

CACHING:
  Identical parameters always produce identical schedules, so the cache
  maps LoanParameters.Key() to the ID of the stored report. A hit returns
  the stored report with 200 and cached=true; a miss returns 201. Cache
  failures are logged and never fail the request.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input, non-amortizing loans, malformed JSON
  - 404: Unknown report or scenario
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Preset loans
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/amortization-engine/amortization"
	"github.com/warp/amortization-engine/cache"
	"github.com/warp/amortization-engine/factory"
)

// DefaultListLimit caps GET /api/reports when no limit is given.
const DefaultListLimit = 50

// DefaultCacheTTL is used when NewHandler receives no cache.
const DefaultCacheTTL = time.Hour

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store       amortization.ReportStore
	Cache       cache.Cache
	LoanFactory *factory.LoanFactory
}

// NewHandler creates a new handler. A nil cache falls back to an
// in-memory cache.
func NewHandler(store amortization.ReportStore, c cache.Cache) *Handler {
	if c == nil {
		c = cache.NewMemory(DefaultCacheTTL)
	}
	return &Handler{
		Store:       store,
		Cache:       c,
		LoanFactory: factory.NewLoanFactory(),
	}
}

// =============================================================================
// HEALTH
// =============================================================================

// Health reports that the server is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// PAYMENT
// =============================================================================

// CalculatePayment returns the level payment for a loan. The start date and
// the extra payment have no effect on it and are not accepted here.
func (h *Handler) CalculatePayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	lj := factory.LoanJSON{
		Principal:       req.Principal,
		AnnualRate:      req.AnnualRate,
		TermYears:       req.TermYears,
		PaymentsPerYear: req.PaymentsPerYear,
		StartDate:       amortization.NewDate(2000, time.January, 1).String(),
	}
	params, err := h.LoanFactory.FromJSON(lj)
	if err != nil {
		writeDomainError(w, "Invalid loan", err)
		return
	}

	payment, err := amortization.NewGenerator(params).Payment()
	if err != nil {
		writeDomainError(w, "Failed to compute payment", err)
		return
	}

	writeJSON(w, http.StatusOK, PaymentResponse{
		Payment:      payment.StringFixed(2),
		PeriodicRate: params.PeriodicRate().String(),
		PeriodCount:  params.PeriodCount(),
	})
}

// =============================================================================
// SCHEDULES
// =============================================================================

// CreateSchedule computes both schedules for the loan in the request body.
func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var lj factory.LoanJSON
	if err := json.NewDecoder(r.Body).Decode(&lj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	params, err := h.LoanFactory.FromJSON(lj)
	if err != nil {
		writeDomainError(w, "Invalid loan", err)
		return
	}

	h.respondWithReport(w, r.Context(), params)
}

func (h *Handler) respondWithReport(w http.ResponseWriter, ctx context.Context, params amortization.LoanParameters) {
	rep, cached, err := h.generate(ctx, params)
	if err != nil {
		writeDomainError(w, "Failed to generate schedule", err)
		return
	}

	status := http.StatusCreated
	if cached {
		status = http.StatusOK
	}
	writeJSON(w, status, toReportDTO(h.LoanFactory, rep, cached))
}

// generate returns the stored report for params, computing and storing it
// on a cache miss.
func (h *Handler) generate(ctx context.Context, params amortization.LoanParameters) (amortization.Report, bool, error) {
	key := params.Key()

	if id, ok := h.Cache.Get(ctx, key); ok {
		rep, err := h.Store.Get(ctx, amortization.ReportID(id))
		if err == nil {
			return rep, true, nil
		}
		if !amortization.IsNotFound(err) {
			log.Printf("Warning: failed to load cached report %s: %v", id, err)
		}
	}

	rep, err := amortization.Run(ctx, params, h.Store)
	if err != nil {
		return amortization.Report{}, false, err
	}

	if err := h.Cache.Set(ctx, key, []byte(rep.ID)); err != nil {
		log.Printf("Warning: failed to cache report %s: %v", rep.ID, err)
	}
	return rep, false, nil
}

// =============================================================================
// REPORTS
// =============================================================================

// ListReports returns stored reports, newest first.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit (use a positive integer)", err)
			return
		}
		limit = n
	}

	infos, err := h.Store.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reports", err)
		return
	}

	dtos := make([]ReportInfoDTO, len(infos))
	for i, info := range infos {
		dtos[i] = toReportInfoDTO(h.LoanFactory, info)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetReport returns one stored report with both schedules.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := amortization.ReportID(chi.URLParam(r, "id"))

	rep, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to get report", err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(h.LoanFactory, rep, false))
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
		var inputErr *amortization.InvalidInputError
		if errors.As(err, &inputErr) {
			resp.Field = inputErr.Field
		}
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps amortization errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case amortization.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Report not found", err)
	case amortization.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
