// Package httpapi exposes the ingestion and read endpoints over HTTP,
// wrapping the core interfaces 1:1.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/cloudburst-warning-service/internal/domain"
	"github.com/couchcryptid/cloudburst-warning-service/internal/ingest"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Coordinator is the ingestion surface the HTTP layer wraps.
type Coordinator interface {
	Submit(raw domain.RawReading) (domain.ClassifiedRecord, error)
	Latest(n int) []domain.ClassifiedRecord
	Capacity() int
	Health() ingest.HealthStatus
	CheckReadiness(ctx context.Context) error
}

// Server exposes the sensor ingestion API plus health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer  *http.Server
	coordinator Coordinator
	logger      *slog.Logger
}

// submitResponse is the success payload of the ingestion endpoint.
type submitResponse struct {
	Status    domain.Severity      `json:"status"`
	Reason    string               `json:"reason"`
	Timestamp time.Time            `json:"timestamp"`
	Data      domain.SensorReading `json:"data"`
}

// validationFailure is the client-error payload enumerating every rejected
// field.
type validationFailure struct {
	Error      string             `json:"error"`
	Violations []domain.Violation `json:"violations"`
}

// NewServer creates an HTTP server with the sensor API routes plus
// /healthz, /readyz, and /metrics.
func NewServer(addr string, coordinator Coordinator, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		coordinator: coordinator,
		logger:      logger,
	}

	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("POST /sensor-data", s.handleSubmit)
	mux.HandleFunc("GET /latest-readings", s.handleLatest)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

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

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Cloudburst Early Warning System API",
		"endpoints": map[string]string{
			"POST /sensor-data":    "Submit sensor readings",
			"GET /latest-readings": "Get recent classified readings",
			"GET /health":          "Health check",
		},
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var raw domain.RawReading
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "malformed JSON body",
		})
		return
	}

	record, err := s.coordinator.Submit(raw)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, validationFailure{
				Error:      "invalid sensor reading",
				Violations: verr.Violations,
			})
			return
		}
		// Classification and append cannot fail on validated input; anything
		// else here is a programmer error.
		s.logger.Error("submit failed unexpectedly", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal error",
		})
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Status:    record.Status,
		Reason:    record.Reason,
		Timestamp: record.Timestamp,
		Data:      record.Data,
	})
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	n := s.coordinator.Capacity()
	if q := r.URL.Query().Get("n"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "query parameter n must be an integer",
			})
			return
		}
		n = parsed // clamped to [0, capacity] by the store
	}

	records := s.coordinator.Latest(n)
	if records == nil {
		records = []domain.ClassifiedRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.coordinator.Health())
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.coordinator.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
