package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler, stream *StreamHandler) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	for _, middleware := range SetupMiddleware() {
		r.Use(middleware)
	}

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		// WebSocket chunk streaming
		r.Get("/stream", stream.Serve)

		r.Get("/world", handler.GetWorldInfo)
		r.Get("/world/progress", handler.GetProgress)
		r.Post("/world/generate", handler.GenerateWorld)

		r.Get("/tiles/{x}/{y}", handler.GetTile)
		r.Get("/chunks/{x}/{y}", handler.GetChunk)
		r.Get("/chunks/visible", handler.GetVisibleChunks)
	})

	return r
}
