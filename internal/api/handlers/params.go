package handlers

import (
	"net/http"
	"strconv"

	"Postify/internal/core/pagination"
)

// GenericResponse is the body of replies that carry only a message
type GenericResponse struct {
	Message string `json:"message"`
}

// ParsePageRequest reads the page and size query parameters.
// Missing or malformed values fall back to the first page and the default size.
func ParsePageRequest(r *http.Request) pagination.Request {
	q := r.URL.Query()
	req := pagination.Request{}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		req.Number = v
	}
	if v, err := strconv.Atoi(q.Get("size")); err == nil {
		req.Size = v
	}
	return req.Normalize()
}

// ParseID parses a positive decimal id from a path segment
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParseCursor parses a non-negative feed cursor. The cursor is a boundary
// and need not name an existing post, so 0 is valid.
func ParseCursor(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
