package user

import (
	"net/http"

	"Postify/internal/api/handlers"
	"Postify/internal/api/middleware"
	"Postify/internal/core/pagination"
	"Postify/internal/core/users"
)

// ListHandler pages through users
type ListHandler struct {
	service users.UserService
}

// NewListHandler creates a new list handler
func NewListHandler(service users.UserService) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList returns a page of users, leaving out the caller when authenticated
// GET /api/1.0/users?page&size
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListUsers(r.Context(), middleware.GetUserID(r), handlers.ParsePageRequest(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, pagination.Map(page, (*users.User).ToView))
}
