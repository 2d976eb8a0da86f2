package routes

import (
	"github.com/go-chi/chi/v5"

	"Postify/internal/api/handlers/post"
	"Postify/internal/api/middleware"
	"Postify/internal/core/posts"
)

// RegisterPostRoutes registers post endpoints on the router
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware *middleware.AuthMiddleware) {
	createHandler := post.NewCreateHandler(service)
	listHandler := post.NewListHandler(service)
	feedHandler := post.NewFeedHandler(service)
	deleteHandler := post.NewDeleteHandler(service)

	r.Get("/posts", listHandler.HandleList)
	r.Get("/posts/{id}", feedHandler.HandleRelative)
	r.Get("/users/{username}/posts", listHandler.HandleList)
	r.Get("/users/{username}/posts/{id}", feedHandler.HandleRelative)

	r.With(authMiddleware.RequireAuth).Post("/posts", createHandler.HandleCreate)
	// Only the author may delete; a missing post is reported the same as a foreign one
	r.With(authMiddleware.RequireAuth).Delete("/posts/{id}", deleteHandler.HandleDelete)
}
