package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/claude/fastbite/internal/food"
	"github.com/claude/fastbite/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	food   *food.Client
	log    *slog.Logger
	apiKey string
	whois  WhoIsFunc
	clock  func() time.Time
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, foodClient *food.Client, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		food:   foodClient,
		log:    log,
		apiKey: apiKey,
		clock:  time.Now,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetWhoIs wires the Tailscale identity resolver. Without it every request
// maps to the local dev user.
func (s *Server) SetWhoIs(fn WhoIsFunc) {
	s.whois = fn
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Group(func(r chi.Router) {
		r.Use(s.Identity)

		// Read endpoints
		r.Get("/api/v1/me", s.handleMe)
		r.Get("/api/v1/profile", s.handleGetProfile)
		r.Get("/api/v1/targets", s.handleGetTargets)
		r.Get("/api/v1/settings", s.handleGetSettings)
		r.Get("/api/v1/log/daily", s.handleDailyLog)
		r.Get("/api/v1/food/search", s.handleFoodSearch)
		r.Get("/api/v1/fasts/types", s.handleFastTypes)
		r.Get("/api/v1/fasts/current", s.handleCurrentFast)
		r.Get("/api/v1/fasts/history", s.handleFastHistory)

		// Mutating endpoints (API key required)
		r.Group(func(rw chi.Router) {
			rw.Use(APIKeyAuth(s.apiKey))
			rw.Put("/api/v1/profile", s.handlePutProfile)
			rw.Patch("/api/v1/settings", s.handlePatchSettings)
			rw.Post("/api/v1/log/items", s.handleLogItems)
			rw.Delete("/api/v1/log/items/{id}", s.handleDeleteLogItem)
			rw.Post("/api/v1/fasts/start", s.handleStartFast)
			rw.Post("/api/v1/fasts/stop", s.handleStopFast)
		})
	})
}
