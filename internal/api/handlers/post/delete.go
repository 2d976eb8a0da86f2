package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Postify/internal/api/handlers"
	"Postify/internal/api/middleware"
	"Postify/internal/core/posts"
)

// DeleteHandler handles post deletion requests
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new handler for deleting posts
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{service: service}
}

// HandleDelete removes a post owned by the caller
// DELETE /api/1.0/posts/{id}
//
// A missing post and another user's post both yield 403.
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return
	}

	postID, ok := handlers.ParseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post id")
		return
	}

	if err := h.service.DeletePost(r.Context(), userID, postID); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.GenericResponse{Message: "Post is removed"})
}
