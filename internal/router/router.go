package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/resto-crm/api/internal/config"
	"github.com/resto-crm/api/internal/handler"
	"github.com/resto-crm/api/internal/menu"
	mw "github.com/resto-crm/api/internal/middleware"
	"github.com/resto-crm/api/internal/order"
	"github.com/resto-crm/api/internal/prefs"
	"github.com/resto-crm/api/internal/staff"
	"github.com/resto-crm/api/internal/table"
	"github.com/resto-crm/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
func New(
	cfg *config.Config,
	catalog *menu.Catalog,
	ledger *table.Ledger,
	drafts *order.DraftStore,
	directory *staff.Directory,
	preferences *prefs.Store,
	hub *ws.Hub,
) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(directory, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/floor", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Menu browser
		menuHandler := handler.NewMenuHandler(catalog)
		r.Route("/menu", menuHandler.RegisterRoutes)

		// Tables and order composition
		tableHandler := handler.NewTableHandler(ledger, drafts, hub)
		draftHandler := handler.NewDraftHandler(drafts, ledger, catalog, hub)
		r.Route("/tables", func(r chi.Router) {
			tableHandler.RegisterRoutes(r)
			draftHandler.RegisterTableRoutes(r)
		})
		r.Route("/drafts", draftHandler.RegisterRoutes)

		// Profile and settings
		profileHandler := handler.NewProfileHandler(directory, preferences)
		profileHandler.RegisterRoutes(r)
	})

	return r
}
