// internal/server/handlers/respond.go

package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// respondWithJSON writes payload as a JSON response body.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError writes a JSON error body.
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil && code >= 500 {
		log.Printf("http error %d: %s: %v", code, message, err)
	}

	respondWithJSON(w, code, map[string]string{"error": message})
}
