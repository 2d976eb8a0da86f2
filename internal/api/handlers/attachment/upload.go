package attachment

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"Postify/internal/api/handlers"
	"Postify/internal/core/attachments"
	"Postify/internal/core/validation"
)

// formField is the multipart field carrying the file
const formField = "file"

// UploadHandler accepts post attachment uploads
type UploadHandler struct {
	service  attachments.Service
	maxBytes int64
}

// NewUploadHandler creates a new upload handler. maxBytes bounds the uploaded file.
func NewUploadHandler(service attachments.Service, maxBytes int64) *UploadHandler {
	return &UploadHandler{service: service, maxBytes: maxBytes}
}

// HandleUpload stores a file as an unbound attachment
// POST /api/1.0/posts/upload (multipart/form-data, field "file")
//
// The returned id is referenced when creating a post. Attachments never
// referenced are reclaimed by the reaper.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	// Leave room for multipart framing around the file itself
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+64*1024)

	file, _, err := r.FormFile(formField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			handlers.WriteError(w, http.StatusRequestEntityTooLarge, "PayloadTooLarge", "File too large")
			return
		}
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Failed to read file")
		return
	}
	if int64(len(data)) > h.maxBytes {
		handlers.WriteError(w, http.StatusRequestEntityTooLarge, "PayloadTooLarge", "File too large")
		return
	}

	attachment, err := h.service.Upload(r.Context(), data)
	if err != nil {
		if validation.IsValidationError(err) {
			handlers.WriteValidationError(w, validation.FieldsOf(err))
			return
		}
		slog.Error("[ATTACHMENT-UPLOAD] failed to store upload", "error", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, attachment)
}
