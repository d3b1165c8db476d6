// Package http exposes the measurement service over HTTP: unit
// conversion and formatting, unit system listings, water property
// lookups, and the usual health, readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spardeck/marine-measure/internal/observability"
	"github.com/spardeck/marine-measure/internal/units"
	"github.com/spardeck/marine-measure/internal/water"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the measurement API plus health, readiness, and
// metrics HTTP endpoints.
type Server struct {
	httpServer    *http.Server
	conv          *units.Converter
	interp        *water.Interpolator
	metrics       *observability.Metrics
	defaultLocale string
	logger        *slog.Logger
}

// NewServer creates an HTTP server with the /v1 measurement routes and
// /healthz, /readyz, and /metrics.
func NewServer(addr string, conv *units.Converter, interp *water.Interpolator, metrics *observability.Metrics, defaultLocale string, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conv:          conv,
		interp:        interp,
		metrics:       metrics,
		defaultLocale: defaultLocale,
		logger:        logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(interp))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /v1/conversions", s.handleConvert)
	mux.HandleFunc("POST /v1/conversions/batch", s.handleConvertBatch)
	mux.HandleFunc("POST /v1/format", s.handleFormat)
	mux.HandleFunc("GET /v1/unit-systems", s.handleListSystems)
	mux.HandleFunc("GET /v1/unit-systems/{system}", s.handleGetSystem)
	mux.HandleFunc("GET /v1/water/properties", s.handleWaterProperties)
	mux.HandleFunc("GET /v1/water/anchors", s.handleWaterAnchors)

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

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// locale returns the request's locale or the configured default.
func (s *Server) locale(r *http.Request) string {
	if l := r.URL.Query().Get("locale"); l != "" {
		return l
	}
	return s.defaultLocale
}

// Machine-readable error codes carried in error payloads.
const (
	codeBadRequest  = "bad_request"
	codeNotFound    = "not_found"
	codeRangeError  = "range_error"
	codeLookupError = "lookup_error"
	codeInternal    = "internal"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeDomainError maps typed domain errors onto HTTP statuses: unknown
// identifiers are 404, out-of-range or unanswerable lookups are 422,
// unusable request parameters are 400, anything else is 500.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case units.IsNotFound(err):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case units.IsConfiguration(err):
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
	case water.IsRangeError(err):
		writeError(w, http.StatusUnprocessableEntity, codeRangeError, err.Error())
	case water.IsLookupError(err):
		writeError(w, http.StatusUnprocessableEntity, codeLookupError, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // headers are already written; nothing left to do
}
