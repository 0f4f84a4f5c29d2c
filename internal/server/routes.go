package server

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Get("/system/stats", s.systemStats)
		r.Get("/agents", s.listAgents)

		r.Route("/claude", func(r chi.Router) {
			r.Get("/models", s.listModels)
			r.Post("/chat", s.chat)
			r.Post("/chat/stream", s.chatStream)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.getSettings)
			r.Post("/", s.updateSettings)
			r.Post("/api-key", s.setAPIKey)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.listSessions)
			r.Post("/", s.createSession)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.getSession)
				r.Delete("/", s.deleteSession)
				r.Post("/messages", s.appendMessage)
			})
		})

		// Event streaming (SSE)
		r.Get("/events", s.serverEvents)
	})
}
