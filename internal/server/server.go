// Package server provides the HTTP REST API for document analysis.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/legal-digest/internal/ingestion"
	"github.com/jonathan/legal-digest/internal/mailer"
	"github.com/jonathan/legal-digest/internal/pipeline"
	"github.com/jonathan/legal-digest/internal/rendering"
	"github.com/jonathan/legal-digest/internal/server/middleware"
	"github.com/jonathan/legal-digest/internal/server/ratelimit"
	"github.com/jonathan/legal-digest/internal/types"
)

// DefaultMaxUploadBytes caps request bodies when no limit is configured
const DefaultMaxUploadBytes = 20 << 20

// Analyzer runs the analysis pipeline
type Analyzer interface {
	Analyze(ctx context.Context, text string, onProgress pipeline.ProgressCallback) (*types.Digest, error)
	Ask(ctx context.Context, question, docContext string) (types.Answer, error)
}

// DocumentExtractor turns an uploaded file into plain text
type DocumentExtractor interface {
	Extract(ctx context.Context, filename, contentType string, data []byte) (*ingestion.Document, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	analyzer       Analyzer
	extractor      DocumentExtractor
	mailer         mailer.Sender
	rateLimiter    *ratelimit.Limiter
	pdf            rendering.PDFOptions
	maxUploadBytes int64
	validate       *validator.Validate
}

// Config holds server configuration. Mailer may be nil, in which case
// /send-summary reports a configuration error.
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadBytes int64
	Analyzer       Analyzer
	Extractor      DocumentExtractor
	Mailer         mailer.Sender
	PDF            rendering.PDFOptions
	RateLimit      *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Analyzer == nil {
		return nil, &types.ConfigurationError{Field: "analyzer", Message: "an analyzer is required"}
	}
	if cfg.Extractor == nil {
		cfg.Extractor = ingestion.NewExtractor()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 300 * time.Second // analysis of long documents
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		analyzer:       cfg.Analyzer,
		extractor:      cfg.Extractor,
		mailer:         cfg.Mailer,
		rateLimiter:    ratelimit.NewLimiter(cfg.RateLimit),
		pdf:            cfg.PDF,
		maxUploadBytes: cfg.MaxUploadBytes,
		validate:       newValidator(),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler wrapped in middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /analyze/stream", s.handleAnalyzeStream)
	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("POST /send-summary", s.handleSendSummary)
	mux.HandleFunc("POST /report", s.handleReport)

	return middleware.Recover(
		middleware.RequestID(
			s.withLogging(
				s.withCORS(
					s.withRateLimit(mux)))))
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)

		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the recorder
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetRequestID(r.Context())
		log.Printf("[%s] %s %s request_id=%s", r.Method, r.URL.Path, r.RemoteAddr, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Printf("[%s] %s completed %d in %v request_id=%s", r.Method, r.URL.Path, rec.status, time.Since(start), requestID)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, ErrorResponse{Error: message})
}

// writeError maps err to its status code and error body
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] %d: %v", status, err)
	}
	s.jsonResponse(w, status, newErrorResponse(err))
}

// extractClientID extracts the client identifier from the request.
// X-Forwarded-For is ignored because it is client-controlled.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// newValidator reports request fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
