package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Postify/internal/api/handlers"
	"Postify/internal/core/users"
)

// GetHandler looks up a single user
type GetHandler struct {
	service users.UserService
}

// NewGetHandler creates a new get handler
func NewGetHandler(service users.UserService) *GetHandler {
	return &GetHandler{service: service}
}

// HandleGet returns the user with the given username
// GET /api/1.0/users/{username}
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUserByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, user.ToView())
}
