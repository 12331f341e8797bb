// Package httpapi exposes the dashboard REST API plus health, readiness,
// and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/geopredictor/geopredictor-api/internal/config"
	"github.com/geopredictor/geopredictor-api/internal/domain"
	"github.com/geopredictor/geopredictor-api/internal/insight"
	"github.com/geopredictor/geopredictor-api/internal/render"
	"github.com/geopredictor/geopredictor-api/internal/session"
)

// Server exposes the dashboard API over HTTP.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger

	catalog  *domain.Catalog
	sessions *session.Store
	insights *insight.Service
	clock    clockwork.Clock

	windowStart time.Time
	windowEnd   time.Time
}

// NewServer wires the API routes onto a chi router.
func NewServer(cfg *config.Config, catalog *domain.Catalog, sessions *session.Store, insights *insight.Service, clock clockwork.Clock, logger *slog.Logger) *Server {
	s := &Server{
		logger:      logger,
		catalog:     catalog,
		sessions:    sessions,
		insights:    insights,
		clock:       clock,
		windowStart: cfg.WindowStart,
		windowEnd:   cfg.WindowEnd,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/regions", s.handleRegions)
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Delete("/", s.handleDeleteSession)
			r.Get("/events", s.handleEvents)
			r.Get("/map", s.handleMap)
			r.Post("/insights", s.handleInsights)
		})
	})

	s.httpServer = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ready",
		"ai_enabled": s.insights.Enabled(),
	})
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"regions": s.catalog.Regions(),
		"window": map[string]string{
			"start": s.windowStart.Format(time.DateOnly),
			"end":   s.windowEnd.Format(time.DateOnly),
		},
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	id := s.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.sessions.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	set, view, ok := s.filteredView(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"region":       set.Region,
		"generated_at": set.GeneratedAt,
		"criteria":     view.Criteria,
		"count":        len(view.Records),
		"records":      view.Records,
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	set, view, ok := s.filteredView(w, r)
	if !ok {
		return
	}
	region, _ := s.catalog.Region(set.Region)
	writeJSON(w, http.StatusOK, render.BuildMapSpec(region, view))
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	set, view, ok := s.filteredView(w, r)
	if !ok {
		return
	}

	summary := domain.Summarize(set, view)
	text, err := s.insights.Analyze(r.Context(), summary)
	switch {
	case errors.Is(err, insight.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err)
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"summary": summary,
		"insight": text,
	})
}

// filteredView resolves the session, the cached (or freshly generated)
// event set, and the filter for a request. On failure it writes the
// error response itself and returns ok=false.
func (s *Server) filteredView(w http.ResponseWriter, r *http.Request) (*domain.EventSet, domain.FilteredView, bool) {
	sessionID := chi.URLParam(r, "sessionID")

	criteria, region, err := s.parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, domain.FilteredView{}, false
	}

	set, err := s.sessions.EventSet(r.Context(), sessionID, region, s.windowStart, s.windowEnd)
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
		return nil, domain.FilteredView{}, false
	case err != nil:
		writeError(w, http.StatusBadRequest, err)
		return nil, domain.FilteredView{}, false
	}

	return set, domain.Filter(set, criteria), true
}

// parseQuery extracts the region and filter criteria from query
// parameters. Omitted parameters fall back to the featured region, the
// end of the simulation window, the current hour, and all categories.
func (s *Server) parseQuery(r *http.Request) (domain.FilterCriteria, string, error) {
	q := r.URL.Query()

	region := q.Get("region")
	if region == "" {
		region = domain.FeaturedRegion
	}

	date := s.windowEnd
	if v := q.Get("date"); v != "" {
		parsed, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return domain.FilterCriteria{}, "", errors.New("date must be YYYY-MM-DD")
		}
		date = parsed
	}

	hour := s.clock.Now().UTC().Hour()
	from, err := parseHour(q.Get("from"), hour)
	if err != nil {
		return domain.FilterCriteria{}, "", err
	}
	to, err := parseHour(q.Get("to"), hour)
	if err != nil {
		return domain.FilterCriteria{}, "", err
	}

	categories := domain.Categories()
	if v := q.Get("categories"); v != "" {
		categories = nil
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				categories = append(categories, domain.Category(name))
			}
		}
	}

	criteria := domain.FilterCriteria{
		Date:       date,
		HourFrom:   from,
		HourTo:     to,
		Categories: categories,
	}
	if err := criteria.Validate(); err != nil {
		return domain.FilterCriteria{}, "", err
	}
	return criteria, region, nil
}

func parseHour(v string, fallback int) (int, error) {
	if v == "" {
		return fallback, nil
	}
	h, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New("hours must be integers")
	}
	return h, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
