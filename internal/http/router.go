package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cheatsheets/internal/handlers"
	"cheatsheets/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Cheatsheets service.CheatsheetService
	DB          handlers.Pinger
	// Ingester and SeedIDs enable POST /api/ingest when both are set.
	Ingester handlers.Ingester
	SeedIDs  func() ([]string, error)
	Logger   *slog.Logger
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(RequestLogger)

	// Add CORS middleware
	r.Use(CORS)

	cheatsheetHandler := handlers.NewCheatsheetHandler(deps.Cheatsheets)
	healthHandler := handlers.NewHealthHandler(deps.DB)
	pageHandler := handlers.NewPageHandler(deps.Cheatsheets)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Get("/cheatsheets", cheatsheetHandler.List)
		r.Get("/cheatsheets/{id}", cheatsheetHandler.Get)
		r.Get("/runs/latest", cheatsheetHandler.LatestRun)
		if deps.Ingester != nil && deps.SeedIDs != nil {
			r.Method(http.MethodPost, "/ingest", handlers.NewIngestHandler(deps.Ingester, deps.SeedIDs))
		}
	})

	// Serve rendered cheatsheet pages
	r.Method(http.MethodGet, "/cheatsheets/{id}", pageHandler)

	return r
}
