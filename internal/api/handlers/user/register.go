package user

import (
	"encoding/json"
	"net/http"

	"Postify/internal/api/handlers"
	"Postify/internal/core/users"
)

const maxRegisterBodyBytes = 16 * 1024

// RegisterHandler handles account sign-up
type RegisterHandler struct {
	service users.UserService
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(service users.UserService) *RegisterHandler {
	return &RegisterHandler{service: service}
}

// HandleRegister creates a new account
// POST /api/1.0/users
func (h *RegisterHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRegisterBodyBytes)

	var req users.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if _, err := h.service.CreateUser(r.Context(), req); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.GenericResponse{Message: "User saved"})
}
