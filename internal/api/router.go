package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dom/league-roulette/internal/api/handlers"
	"github.com/dom/league-roulette/internal/api/middleware"
	"github.com/dom/league-roulette/internal/config"
	"github.com/dom/league-roulette/internal/service"
	"github.com/dom/league-roulette/internal/websocket"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	catalogHandler := handlers.NewCatalogHandler(services.Catalog, services.Roll)
	rollHandler := handlers.NewRollHandler(services.Roll)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/status", catalogHandler.Status)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Admin(cfg.AdminJWTSecret))
				r.Post("/sync", catalogHandler.Sync)
			})
		})

		r.Get("/champions", catalogHandler.Champions)
		r.Get("/champions/{id}", catalogHandler.Champion)
		r.Get("/items", catalogHandler.Items)
		r.Get("/items/{id}", catalogHandler.Item)
		r.Get("/keystones", catalogHandler.Keystones)
		r.Get("/roles", catalogHandler.Roles)
		r.Get("/suffixes", catalogHandler.Suffixes)

		r.Post("/roll", rollHandler.Roll)

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
