// Package http exposes the reporting pipeline as a small JSON API.
package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"amzledger/internal/log"
	"amzledger/internal/services"
)

// Server wraps http.Server with the report routes mounted.
type Server struct {
	http.Server

	reports     *services.ReportService
	logger      *log.Logger
	defaultYear int
	defaultSort string
}

// NewServer configures routes, returning a ready-to-run server. defaultYear
// and defaultSort fill in requests that do not name a year or sort column.
func NewServer(addr string, reports *services.ReportService, logger *log.Logger, defaultYear int, defaultSort string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
		reports:     reports,
		logger:      logger.WithComponent(log.ComponentHTTP),
		defaultYear: defaultYear,
		defaultSort: defaultSort,
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/reports/types", s.withRequestLog(s.handleTypeTotals))
	mux.HandleFunc("/api/reports/monthly", s.withRequestLog(s.handleMonthly))
	mux.HandleFunc("/api/reports/skus", s.withRequestLog(s.handleSKULedger))

	return s
}

// withRequestLog stamps each request with an id and logs start and completion.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()

		s.logger.InfoContext(r.Context(), "Request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(r.Context(), "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatus, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds())
	}
}

// responseWriter captures the status code for the completion log line.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
