// internal/server/handlers/listing.go

package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"sellerpilot/internal/domain/insight"
)

// maxUploadBytes caps product image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// ListingHandler handles product-listing HTTP requests.
type ListingHandler struct {
	service insight.ListingService
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(service insight.ListingService) *ListingHandler {
	return &ListingHandler{service: service}
}

// Generate creates listing content from a multipart form carrying the
// product description, category, requested content options and an
// optional product image.
func (h *ListingHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}

	description := r.FormValue("description")
	category := r.FormValue("category")
	if description == "" || category == "" {
		respondWithError(w, http.StatusBadRequest, "Missing description or category", nil)
		return
	}

	// All three content types are generated unless the caller
	// narrows the selection.
	options := insight.ListingOptions{SEO: true, WhatsApp: true, Conversational: true}
	if raw := r.FormValue("content_options_str"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &options); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid content_options_str", err)
			return
		}
	}

	req := insight.ListingRequest{
		Description: description,
		Category:    category,
		Options:     options,
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Failed to read image", err)
			return
		}
		req.ImageData = data
		req.ImageMIME = header.Header.Get("Content-Type")
	}

	generationID := uuid.New().String()
	log.Printf("listing %s: generating content for category %q (image: %v)", generationID, category, len(req.ImageData) > 0)

	content, err := h.service.Generate(r.Context(), req)
	if err != nil {
		log.Printf("listing %s: generation failed: %v", generationID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to generate listing content.", err)
		return
	}

	// The ID travels with the content so later improve/translate calls
	// can be traced back to this generation in the logs.
	content.GenerationID = generationID
	respondWithJSON(w, http.StatusOK, content)
}

type improveRequest struct {
	Content insight.GeneratedContent `json:"content"`
}

// Improve refines previously generated content.
func (h *ListingHandler) Improve(w http.ResponseWriter, r *http.Request) {
	var req improveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if id := req.Content.GenerationID; id != "" {
		log.Printf("listing %s: improving content", id)
	}

	improved, err := h.service.Improve(r.Context(), req.Content)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to improve listing.", err)
		return
	}

	improved.GenerationID = req.Content.GenerationID
	respondWithJSON(w, http.StatusOK, improved)
}

type translateRequest struct {
	Content  insight.GeneratedContent `json:"content"`
	Language string                   `json:"language"`
}

// Translate translates the text fields of generated content.
func (h *ListingHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Language == "" {
		respondWithError(w, http.StatusBadRequest, "Missing language", nil)
		return
	}

	if id := req.Content.GenerationID; id != "" {
		log.Printf("listing %s: translating content to %s", id, req.Language)
	}

	translated, err := h.service.Translate(r.Context(), req.Content, req.Language)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to translate content.", err)
		return
	}

	translated.GenerationID = req.Content.GenerationID
	respondWithJSON(w, http.StatusOK, translated)
}
