package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
)

// failureResponse is the shape of every error reply: a short human-readable
// message plus an opaque detail string.
type failureResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeFailure(w http.ResponseWriter, status int, message, detail string) {
	writeJSON(w, status, failureResponse{Message: message, Error: detail})
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeFailure(w, http.StatusMethodNotAllowed, "method not allowed", "method not allowed")
}
