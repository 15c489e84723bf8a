/*
scenarios.go - Preset loans for demos and smoke tests

PURPOSE:
  A handful of ready-made loans that exercise the interesting paths of the
  generator: a plain mortgage, an accelerated payoff, a quarterly cadence
  and a zero-rate loan. Clients list them and run one by ID.

SCENARIOS:
  mortgage-30y:       100,000 at 6% over 30 years, monthly
  mortgage-30y-extra: Same loan with 200 extra each month
  quarterly-15y:      50,000 at 4.5% over 15 years, quarterly rows
  car-zero-rate:      12,000 at 0% over 1 year

  The loans themselves live in factory/presets.go.

SEE ALSO:
  - handlers.go: respondWithReport
  - cmd/amortize/scenarios.go: CLI listing of the same presets
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/warp/amortization-engine/factory"
)

// Scenarios returns the preset loans in display order.
func Scenarios() []ScenarioDTO {
	presets := factory.Presets()
	dtos := make([]ScenarioDTO, len(presets))
	for i, p := range presets {
		dtos[i] = toScenarioDTO(p)
	}
	return dtos
}

func toScenarioDTO(p factory.Preset) ScenarioDTO {
	return ScenarioDTO{
		ID:          p.ID,
		Name:        p.Loan.Name,
		Description: p.Description,
		Loan:        p.Loan,
	}
}

// ListScenarios returns all preset loans.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Scenarios())
}

// RunScenario computes the schedules for a preset loan.
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s, ok := factory.FindPreset(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Scenario not found", nil)
		return
	}

	params, err := h.LoanFactory.FromJSON(s.Loan)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Invalid scenario "+id, err)
		return
	}

	h.respondWithReport(w, r.Context(), params)
}
