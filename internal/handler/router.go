package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/dmarrez/inventario/internal/pkg/metrics"
	"github.com/dmarrez/inventario/internal/repository"
)

// Router assembles the HTTP surface: the JSON API, the health endpoint
// and the static frontend.
type Router struct {
	accountHandler   *AccountHandler
	inventoryHandler *InventoryHandler
	db               repository.DatabaseHealth
	staticDir        string
	metrics          *metrics.Metrics
	logger           zerolog.Logger
}

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	AccountHandler   *AccountHandler
	InventoryHandler *InventoryHandler
	DB               repository.DatabaseHealth

	// StaticDir is the directory the frontend is served from.
	// Empty disables static serving.
	StaticDir string

	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

// NewRouter creates a new Router.
func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		accountHandler:   cfg.AccountHandler,
		inventoryHandler: cfg.InventoryHandler,
		db:               cfg.DB,
		staticDir:        cfg.StaticDir,
		metrics:          cfg.Metrics,
		logger:           cfg.Logger.With().Str("component", "router").Logger(),
	}
}

// Handler returns the main HTTP handler.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(CORS)
	r.Use(RequestLogger(rt.logger, rt.metrics))

	r.Get("/health", rt.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/registro", rt.accountHandler.Register)
		r.Post("/login", rt.accountHandler.Login)
		r.Get("/productos/{userID}", rt.inventoryHandler.ListProducts)
		r.Post("/productos", rt.inventoryHandler.AddProduct)
	})

	if rt.staticDir != "" {
		// Serves index.html at / and the rest of the frontend beneath it.
		r.Handle("/*", http.FileServer(http.Dir(rt.staticDir)))
	}

	return r
}

// handleHealth reports process liveness and store reachability. The
// process stays healthy while the store is down because continuity mode
// keeps serving; the store status is informational.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	store := "ok"
	if err := rt.db.Ping(r.Context()); err != nil {
		store = "unreachable"
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"store":  store,
	})
}
