package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.Get("/api/version", h.getVersion)

	router.Group(func(r chi.Router) {
		if h.requireAuth {
			r.Use(h.authenticate)
		}

		r.Get("/api/user", h.getUser)

		r.Route("/api/books", func(r chi.Router) {
			r.Get("/", h.listBooks)
			r.Post("/", h.createBook)
			r.Get("/local", h.listLocalBooks)

			r.Route("/{bookID}", func(r chi.Router) {
				r.Use(h.withBook)

				r.Delete("/", h.deleteBook)
				r.Post("/init", h.initBook)
				r.Post("/invite", h.inviteForBook)
				r.Get("/collaborators", h.getCollaborators)

				r.Get("/items", h.getItems)
				r.Get("/meta", h.getMeta)
				r.Post("/batch", h.batch)

				r.Get("/sync", h.getSyncStatus)
				r.Post("/sync", h.sync)
				r.Delete("/sync", h.cancelSync)

				r.Get("/assets/*", h.getAsset)
			})
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	return router
}
