package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/layouts", func(r chi.Router) {
			r.Get("/", s.handleListLayouts)
			r.Post("/", s.handleCreateLayout)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(s.sessionMiddleware)

				r.Get("/", s.handleGetLayout)
				r.Delete("/", s.handleDeleteLayout)
				r.Get("/export", s.handleExport)
				r.Get("/validation", s.handleValidation)
				r.Get("/scene", s.handleScene)
				r.Get("/stats", s.handleStats)
				r.Post("/undo", s.handleUndo)
				r.Post("/redo", s.handleRedo)

				r.Route("/platforms", func(r chi.Router) {
					r.Post("/", s.handleAddPlatform)
					r.Route("/{pid}", func(r chi.Router) {
						r.Delete("/", s.handleRemovePlatform)
						r.Put("/position", s.handleMovePlatform)
						r.Post("/shops", s.handleAddShop)
					})
				})

				r.Post("/infrastructure", s.handleAddInfrastructure)
				r.Post("/connectors", s.handleAddConnector)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  s.version,
		"sessions": len(s.sessions.ids()),
	})
}
