package post

import (
	"errors"
	"log/slog"
	"net/http"

	"Postify/internal/api/handlers"
	"Postify/internal/core/posts"
	"Postify/internal/core/users"
	"Postify/internal/core/validation"
)

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	handlers.WriteError(w, statusCode, errorType, message)
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case validation.IsValidationError(err):
		handlers.WriteValidationError(w, validation.FieldsOf(err))

	case errors.Is(err, posts.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden", "You are not allowed to delete this post")

	case errors.Is(err, users.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "UserNotFound", "User not found")

	case errors.Is(err, posts.ErrAttachmentNotFound):
		writeError(w, http.StatusNotFound, "AttachmentNotFound", "Attachment not found")

	case posts.IsNotFound(err):
		writeError(w, http.StatusNotFound, "PostNotFound", "Post not found")

	default:
		// Don't leak internal error details to clients
		slog.Error("[POST-API] unexpected error in post handler", "error", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
