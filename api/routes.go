package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes registers every endpoint. Project routes run inside a per-request
// store session.
func setupRoutes(r chi.Router, handlers *routeHandlers, sessions sessionMiddleware, metricsHandler http.Handler) {
	r.NotFound(handlers.indexHandler.notFound())
	r.MethodNotAllowed(handlers.indexHandler.methodNotAllowed())

	r.Get("/", handlers.indexHandler.welcome())
	r.Get("/healthz", handlers.indexHandler.health())
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/project", func(r chi.Router) {
		r.Use(sessions.provide)

		r.Get("/list/all", handlers.projectHandler.listAllProjects())
		r.Get("/list/{name}", handlers.projectHandler.listProjectsByName())
		r.Get("/read/{project_id}", handlers.projectHandler.readProject())
		r.Post("/create", handlers.projectHandler.createProject())
		r.Patch("/update/{project_id}", handlers.projectHandler.updateProject())
		r.Delete("/delete/{project_id}", handlers.projectHandler.deleteProject())
	})
}
