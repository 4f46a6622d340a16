// Package api wires the advisor's HTTP surface together: the chi
// router, its middleware stack, and the handler routes for every
// operation in spec.md §4.F.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dom/draft-advisor/internal/api/handlers"
	"github.com/dom/draft-advisor/internal/api/middleware"
	"github.com/dom/draft-advisor/internal/config"
)

// NewRouter builds the advisor API's chi router. Room endpoints sit
// behind middleware.Auth, which is a no-op passthrough when cfg.JWTSecret
// is unset (spec.md §4.I).
func NewRouter(h *handlers.Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/draft", func(r chi.Router) {
		r.Get("/meta", h.Meta)
		r.Post("/assign", h.Assign)
		r.Post("/recommend", h.Recommend)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))

			r.Route("/room/{code}", func(r chi.Router) {
				r.Post("/", h.CreateRoom)
				r.Post("/apply", h.Apply)
				r.Get("/ws", h.WS)
			})
		})
	})

	return r
}
