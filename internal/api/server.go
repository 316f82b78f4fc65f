// Package api provides the gridbill HTTP server.
// It serves the dashboard website, the accounts listing endpoint and the
// mock payment-validation endpoint.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/observability"
)

// Version is reported by /api/version.
const Version = "0.1.0"

// Server is the gridbill HTTP API server.
type Server struct {
	store      domain.AccountStore
	logger     *slog.Logger
	metrics    *observability.Metrics
	delay      time.Duration // Artificial accounts-listing latency
	websiteDir string
	now        func() time.Time
}

// NewServer creates a new API server with a 1s listing delay.
func NewServer(store domain.AccountStore, logger *slog.Logger) *Server {
	return &Server{
		store:  store,
		logger: logger,
		delay:  time.Second,
		now:    time.Now,
	}
}

// SetAccountsDelay overrides the artificial listing delay.
func (s *Server) SetAccountsDelay(d time.Duration) { s.delay = d }

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics(m *observability.Metrics) { s.metrics = m }

// SetWebsiteDir sets the static dashboard directory. Empty means discover.
func (s *Server) SetWebsiteDir(dir string) { s.websiteDir = dir }

// SetClock overrides the clock used for expiry validation (tests only).
func (s *Server) SetClock(now func() time.Time) { s.now = now }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)
	if s.metrics != nil {
		r.Use(s.requestMetrics)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": Version,
		})
	})

	r.Get("/api/getAccounts", s.handleGetAccounts)
	r.Post("/api/processPayment", s.handleProcessPayment)

	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	}

	// Static dashboard
	websiteDir := s.websiteDir
	if websiteDir == "" {
		websiteDir = findWebsiteDir()
	}
	if websiteDir != "" {
		fileServer := http.FileServer(http.Dir(websiteDir))
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, filepath.Join(websiteDir, "index.html"))
		})
		r.Get("/*", fileServer.ServeHTTP)
	} else {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"status": "gridbill is running",
			})
		})
	}

	return r
}

// findWebsiteDir locates the dashboard assets in various contexts.
func findWebsiteDir() string {
	candidates := []string{
		"website",      // Running from project root
		"../website",   // Running from build dir
		"/app/website", // Container image
	}
	if home := os.Getenv("GRIDBILL_HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, "website"))
	}

	for _, dir := range candidates {
		if _, err := os.Stat(filepath.Join(dir, "index.html")); err == nil {
			return dir
		}
	}
	return ""
}

// requestMetrics records per-route request counts by status code.
func (s *Server) requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
