package post

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"Postify/internal/api/handlers"
	"Postify/internal/core/pagination"
	"Postify/internal/core/posts"
)

// CountResponse is returned by count-only feed queries
type CountResponse struct {
	Count int64 `json:"count"`
}

// FeedHandler serves cursor queries relative to a post id
type FeedHandler struct {
	service posts.Service
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(service posts.Service) *FeedHandler {
	return &FeedHandler{service: service}
}

// HandleRelative lists posts before or after the cursor id
// GET /api/1.0/posts/{id}?direction=after|before&count=true&page&size&sort
// GET /api/1.0/users/{username}/posts/{id}?...
//
// direction defaults to "after"; any other value means "before".
// "before" returns a page; "after" returns a list, or {"count": n} with count=true.
func (h *FeedHandler) HandleRelative(w http.ResponseWriter, r *http.Request) {
	cursorID, ok := handlers.ParseCursor(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid cursor id")
		return
	}
	username := chi.URLParam(r, "username")
	q := r.URL.Query()
	sort := posts.ParseSort(q.Get("sort"))

	direction := q.Get("direction")
	if direction == "" {
		direction = "after"
	}

	if !strings.EqualFold(direction, "after") {
		page, err := h.service.ListBefore(r.Context(), username, cursorID, handlers.ParsePageRequest(r), sort)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		handlers.WriteJSON(w, http.StatusOK, pagination.Map(page, (*posts.Post).ToView))
		return
	}

	if strings.EqualFold(q.Get("count"), "true") {
		count, err := h.service.CountAfter(r.Context(), username, cursorID)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		handlers.WriteJSON(w, http.StatusOK, CountResponse{Count: count})
		return
	}

	items, err := h.service.ListAfter(r.Context(), username, cursorID, sort)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	views := make([]*posts.PostView, 0, len(items))
	for _, p := range items {
		views = append(views, p.ToView())
	}
	handlers.WriteJSON(w, http.StatusOK, views)
}
