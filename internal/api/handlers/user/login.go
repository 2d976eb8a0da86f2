package user

import (
	"log/slog"
	"net/http"

	"Postify/internal/api/handlers"
	"Postify/internal/core/users"
)

// TokenIssuer mints access tokens for authenticated users
type TokenIssuer interface {
	Issue(userID int64, username string) (string, error)
}

// LoginResponse is the authenticated user plus a bearer token
type LoginResponse struct {
	*users.UserView
	Token string `json:"token"`
}

// LoginHandler exchanges HTTP basic credentials for a token
type LoginHandler struct {
	service users.UserService
	tokens  TokenIssuer
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(service users.UserService, tokens TokenIssuer) *LoginHandler {
	return &LoginHandler{service: service, tokens: tokens}
}

// HandleLogin authenticates with HTTP basic credentials
// POST /api/1.0/login
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	username, password, ok := r.BasicAuth()
	if !ok || username == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "Unauthorized")
		return
	}

	user, err := h.service.Authenticate(r.Context(), username, password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		slog.Error("[AUTH] failed to issue token", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
		return
	}

	slog.Info("[AUTH] user logged in", "user_id", user.ID)
	handlers.WriteJSON(w, http.StatusOK, LoginResponse{UserView: user.ToView(), Token: token})
}
