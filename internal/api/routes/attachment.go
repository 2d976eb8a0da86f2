package routes

import (
	"github.com/go-chi/chi/v5"

	"Postify/internal/api/handlers/attachment"
	"Postify/internal/api/middleware"
	"Postify/internal/core/attachments"
)

// RegisterAttachmentRoutes registers the attachment upload endpoint
func RegisterAttachmentRoutes(r chi.Router, service attachments.Service, authMiddleware *middleware.AuthMiddleware, maxBytes int64) {
	uploadHandler := attachment.NewUploadHandler(service, maxBytes)

	r.With(authMiddleware.RequireAuth).Post("/posts/upload", uploadHandler.HandleUpload)
}
