package helpers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body returned on every failure: a single
// human-readable message, never internal detail.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and
// encodes v as the response body.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONError writes an ErrorResponse with the given status and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}
