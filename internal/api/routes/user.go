package routes

import (
	"github.com/go-chi/chi/v5"

	"Postify/internal/api/handlers/user"
	"Postify/internal/api/middleware"
	"Postify/internal/core/users"
)

// RegisterUserRoutes registers account endpoints on the router.
// maxImageBytes bounds avatar uploads on profile update.
func RegisterUserRoutes(r chi.Router, service users.UserService, tokens user.TokenIssuer, authMiddleware *middleware.AuthMiddleware, maxImageBytes int64) {
	registerHandler := user.NewRegisterHandler(service)
	listHandler := user.NewListHandler(service)
	getHandler := user.NewGetHandler(service)
	updateHandler := user.NewUpdateHandler(service, maxImageBytes)
	loginHandler := user.NewLoginHandler(service, tokens)

	r.Post("/users", registerHandler.HandleRegister)
	r.Post("/login", loginHandler.HandleLogin)

	// Listing works anonymously; an authenticated caller is left out of the result
	r.With(authMiddleware.OptionalAuth).Get("/users", listHandler.HandleList)
	r.Get("/users/{username}", getHandler.HandleGet)

	r.With(authMiddleware.RequireAuth).Put("/users/{id}", updateHandler.HandleUpdate)
}
