package httpapi

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the JSON body for every non-2xx answer
type errorResponse struct {
	Message string `json:"message"`
}

// respondJSON writes v as a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError writes a structured error body with the given status code
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}
