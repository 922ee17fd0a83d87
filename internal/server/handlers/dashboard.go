// internal/server/handlers/dashboard.go

package handlers

import (
	"encoding/json"
	"net/http"

	"sellerpilot/internal/domain/insight"
)

// DashboardHandler handles dashboard HTTP requests.
type DashboardHandler struct {
	service insight.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service insight.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type summaryRequest struct {
	Products []insight.Product `json:"products"`
	Pincode  string            `json:"pincode"`
}

// GetSummary returns the weekly AI summary for the seller. Generation
// failures fall back internally, so this endpoint always responds 200
// with a complete summary once the body parses.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Pincode == "" {
		respondWithError(w, http.StatusBadRequest, "Missing pincode", nil)
		return
	}

	summary := h.service.Summary(r.Context(), req.Products, req.Pincode)
	respondWithJSON(w, http.StatusOK, summary)
}
