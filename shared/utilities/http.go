package utilities

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Detail any `json:"detail"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an error reply of the form {"detail": detail}.
func WriteError(w http.ResponseWriter, status int, detail any) {
	WriteJSON(w, status, ErrorResponse{Detail: detail})
}
