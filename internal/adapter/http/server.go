// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"
	"strings"
	"time"

	"fitplanner/internal/app"
	"fitplanner/internal/metrics"

	"github.com/gorilla/mux"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	plans          *app.PlanService
	reports        *app.ReportService
	metrics        *metrics.Manager
	metricsHandler http.Handler
	sessionMaxAge  time.Duration
	webDir         string
}

// New creates a Server wired to the given application services.
func New(ps *app.PlanService, rs *app.ReportService, webDir string) *Server {
	return &Server{plans: ps, reports: rs, webDir: webDir}
}

// WithMetrics records request metrics in m and exposes h on /metrics when
// h is not nil.
func (s *Server) WithMetrics(m *metrics.Manager, h http.Handler) *Server {
	s.metrics = m
	s.metricsHandler = h
	return s
}

// WithSessionMaxAge sets the lifetime of the session cookie. Zero makes it a
// browser-session cookie.
func (s *Server) WithSessionMaxAge(d time.Duration) *Server {
	s.sessionMaxAge = d
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	root := mux.NewRouter()
	root.Use(s.recoveryMiddleware, s.loggingMiddleware)

	api := root.PathPrefix("/api").Subrouter()
	api.Use(s.sessionMiddleware)
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)
	api.HandleFunc("/options", s.handleOptions).Methods(http.MethodGet)
	api.HandleFunc("/plans", s.handleCreatePlan).Methods(http.MethodPost)
	api.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/history/{pos:[0-9]+}/report.pdf", s.handleReportDocument).Methods(http.MethodGet)
	api.HandleFunc("/history/{pos:[0-9]+}/report.txt", s.handleReportText).Methods(http.MethodGet)
	api.HandleFunc("/session/reset", s.handleSessionReset).Methods(http.MethodPost)

	if s.metricsHandler != nil {
		root.Handle("/metrics", s.metricsHandler).Methods(http.MethodGet)
	}
	// API paths never fall through to the static site so that method
	// mismatches under /api surface as 405.
	root.MatcherFunc(func(r *http.Request, _ *mux.RouteMatch) bool {
		return !strings.HasPrefix(r.URL.Path, "/api/")
	}).Handler(spaFromDisk(s.webDir))
	return withNoCache(root)
}
