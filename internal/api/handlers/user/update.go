package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Postify/internal/api/handlers"
	"Postify/internal/api/middleware"
	"Postify/internal/core/users"
)

// UpdateHandler handles profile updates
type UpdateHandler struct {
	service     users.UserService
	maxBodySize int64
}

// NewUpdateHandler creates a new update handler.
// maxImageBytes bounds the decoded avatar; the request body limit is derived from it.
func NewUpdateHandler(service users.UserService, maxImageBytes int64) *UpdateHandler {
	// base64 inflates by 4/3, plus room for the rest of the JSON
	return &UpdateHandler{
		service:     service,
		maxBodySize: maxImageBytes*4/3 + 4096,
	}
}

// HandleUpdate changes the caller's own display name and avatar
// PUT /api/1.0/users/{id}
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r)
	if actorID == 0 {
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return
	}

	targetID, ok := handlers.ParseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid user id")
		return
	}
	if targetID != actorID {
		writeError(w, http.StatusForbidden, "Forbidden", "You are not allowed to update this user")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req users.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "PayloadTooLarge", "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	user, err := h.service.UpdateUser(r.Context(), actorID, targetID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, user.ToView())
}
