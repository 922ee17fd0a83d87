// internal/server/handlers/planner.go

package handlers

import (
	"net/http"

	"sellerpilot/internal/domain/insight"
)

// PlannerHandler handles inventory planner HTTP requests.
type PlannerHandler struct {
	service insight.PlannerService
}

// NewPlannerHandler creates a new planner handler.
func NewPlannerHandler(service insight.PlannerService) *PlannerHandler {
	return &PlannerHandler{service: service}
}

// GetFullReport returns the five-section planner report for a
// location (default "Delhi").
func (h *PlannerHandler) GetFullReport(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		location = "Delhi"
	}

	report, err := h.service.FullReport(r.Context(), location)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Error generating planner report: "+err.Error(), err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}
