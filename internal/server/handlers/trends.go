// internal/server/handlers/trends.go

package handlers

import (
	"encoding/json"
	"net/http"

	"sellerpilot/internal/domain/insight"
)

// TrendsHandler handles trend-analysis HTTP requests.
type TrendsHandler struct {
	service insight.TrendsService
}

// NewTrendsHandler creates a new trends handler.
func NewTrendsHandler(service insight.TrendsService) *TrendsHandler {
	return &TrendsHandler{service: service}
}

type trendsRequest struct {
	Cities   []string `json:"cities"`
	Category string   `json:"category"`
}

type trendsResponse struct {
	Trends []any `json:"trends"`
}

// Analyze returns trend records per requested city. A city whose
// analysis failed appears as {city, error} without affecting the
// other cities.
func (h *TrendsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req trendsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Cities) == 0 || req.Category == "" {
		respondWithError(w, http.StatusBadRequest, "Missing cities or category", nil)
		return
	}

	resp := trendsResponse{Trends: []any{}}
	for _, city := range h.service.Analyze(r.Context(), req.Cities, req.Category) {
		if city.Err != nil {
			resp.Trends = append(resp.Trends, insight.TrendError{City: city.City, Error: city.Err.Error()})
			continue
		}
		for _, rec := range city.Records {
			resp.Trends = append(resp.Trends, rec)
		}
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// FeatureImages returns product image URLs for a feature term. A
// lookup failure is reported inline so the frontend can render a
// placeholder instead of an error page.
func (h *TrendsHandler) FeatureImages(w http.ResponseWriter, r *http.Request) {
	feature := r.URL.Query().Get("feature")
	category := r.URL.Query().Get("category")
	if feature == "" {
		respondWithError(w, http.StatusBadRequest, "Missing feature parameter", nil)
		return
	}

	result, err := h.service.FeatureImages(r.Context(), feature, category)
	if err != nil {
		respondWithJSON(w, http.StatusOK, map[string]string{
			"feature":  feature,
			"category": category,
			"error":    err.Error(),
		})
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
