package user

import (
	"errors"
	"log/slog"
	"net/http"

	"Postify/internal/api/handlers"
	"Postify/internal/core/users"
	"Postify/internal/core/validation"
)

func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	handlers.WriteError(w, statusCode, errorType, message)
}

// handleServiceError maps user service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case validation.IsValidationError(err):
		handlers.WriteValidationError(w, validation.FieldsOf(err))
	case errors.Is(err, users.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden", "You are not allowed to update this user")
	case errors.Is(err, users.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Unauthorized", "Unauthorized")
	case users.IsNotFound(err):
		writeError(w, http.StatusNotFound, "UserNotFound", "User not found")
	default:
		slog.Error("[USER-API] unexpected error in user handler", "error", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
