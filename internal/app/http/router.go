package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ss-quote/go_backend/internal/app/config"
	"ss-quote/go_backend/internal/app/http/handlers"
	"ss-quote/go_backend/internal/app/http/middleware"
	"ss-quote/go_backend/internal/infra/settings"
)

func NewRouter(cfg config.Config, st *settings.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging)

	h := handlers.New(cfg, st)

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.InternalAuth(cfg.InternalToken))

			r.Post("/quotes/event", h.QuoteEvent)
			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.UpdateSettings)
		})
	})

	return r
}
