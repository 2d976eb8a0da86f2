package post

import (
	"encoding/json"
	"net/http"

	"Postify/internal/api/handlers"
	"Postify/internal/api/middleware"
	"Postify/internal/core/posts"
)

// maxCreateBodyBytes allows for the maximum content length in multibyte characters
const maxCreateBodyBytes = 64 * 1024

// CreateHandler handles post creation
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{service: service}
}

// HandleCreate creates a post for the authenticated user
// POST /api/1.0/posts
//
// Request body: {"content": "...", "attachment": {"id": 12}}
// Response: PostView
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCreateBodyBytes)

	var req posts.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	post, err := h.service.CreatePost(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, post.ToView())
}
