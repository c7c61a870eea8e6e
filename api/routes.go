package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires all routes under the versioned prefix. Admin routes sit
// behind the bearer-token middleware; everything else is public.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public endpoints
		r.Get("/health", handlers.healthHandler.health())
		r.Post("/contact", handlers.contactHandler.submitContact())
		r.Get("/projects", handlers.projectHandler.listPublishedProjects())
		r.Get("/projects/featured", handlers.projectHandler.listFeaturedProjects())
		r.Get("/projects/{slug}", handlers.projectHandler.getPublishedProject())

		r.Post("/auth/login", handlers.authHandler.login())
		r.Post("/auth/refresh", handlers.authHandler.refresh())
		r.Post("/auth/password-reset", handlers.authHandler.requestPasswordReset())
		r.Post("/auth/reset-password", handlers.authHandler.resetPassword())

		// Admin endpoints
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/contacts", handlers.contactHandler.listContacts())
			r.Get("/contacts/{contactID}", handlers.contactHandler.getContact())
			r.Put("/contacts/{contactID}", handlers.contactHandler.updateContactStatus())

			r.Get("/projects", handlers.projectHandler.listProjects())
			r.Post("/projects", handlers.projectHandler.createProject())
			r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())
		})
	})
}
