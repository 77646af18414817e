package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/rentbook/internal/http/history"
	"github.com/MrJamesThe3rd/rentbook/internal/http/invoice"
	"github.com/MrJamesThe3rd/rentbook/internal/http/occupancy"
	"github.com/MrJamesThe3rd/rentbook/internal/http/room"
	"github.com/MrJamesThe3rd/rentbook/internal/http/settings"
)

type Handlers struct {
	Rooms     *room.Handler
	Occupancy *occupancy.Handler
	Settings  *settings.Handler
	Invoices  *invoice.Handler
	History   *history.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "X-Skipped-Items"},
		MaxAge:         300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/rooms", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Rooms.Routes(r)
		})

		r.Route("/occupancy", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Occupancy.Routes(r)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Settings.Routes(r)
		})

		r.Route("/invoices", h.Invoices.Routes)
		r.Route("/history", h.History.Routes)
	})

	return router
}
