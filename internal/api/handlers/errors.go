package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
}

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error:   errorType,
		Message: message,
	})
}

// WriteValidationError writes a 400 listing each offending field
func WriteValidationError(w http.ResponseWriter, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:            "ValidationError",
		Message:          "Validation error",
		ValidationErrors: fields,
	})
}

// WriteJSON encodes body with the given status
func WriteJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("[API] failed to encode response", "error", err)
	}
}
