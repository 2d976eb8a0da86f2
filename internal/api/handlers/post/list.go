package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Postify/internal/api/handlers"
	"Postify/internal/core/pagination"
	"Postify/internal/core/posts"
)

// ListHandler serves plain paged listings of all posts or one user's posts
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList pages through posts
// GET /api/1.0/posts?page&size&sort
// GET /api/1.0/users/{username}/posts?page&size&sort
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	page, err := h.service.ListPosts(r.Context(), username,
		handlers.ParsePageRequest(r), posts.ParseSort(r.URL.Query().Get("sort")))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, pagination.Map(page, (*posts.Post).ToView))
}
