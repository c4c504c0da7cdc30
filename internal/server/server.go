// Package server exposes the extraction pipeline over HTTP. Routes mirror
// the JSON API consumed by the web client: extract, upload, export, and
// sample-text.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cobalt-ridge/gleaner/internal/cache"
	"github.com/cobalt-ridge/gleaner/internal/document"
	"github.com/cobalt-ridge/gleaner/internal/engine"
)

const (
	defaultMaxUploadBytes = 16 << 20
	defaultCacheEntries   = 100
	defaultCacheTTL       = 5 * time.Minute
	defaultSamplePath     = "data/sample_news.txt"

	msgTooLarge = "File too large. Maximum size is 16MB."
)

// Server serves the extraction API. Responses for identical extract
// requests are cached for a bounded window.
type Server struct {
	engine     *engine.Engine
	cache      *cache.Cache
	reader     *document.Reader
	samplePath string
	maxUpload  int64
	now        func() time.Time
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithCache replaces the default response cache.
func WithCache(c *cache.Cache) Option {
	return func(s *Server) { s.cache = c }
}

// WithReader replaces the default document reader.
func WithReader(r *document.Reader) Option {
	return func(s *Server) { s.reader = r }
}

// WithSamplePath sets the path served by the sample-text endpoint.
func WithSamplePath(path string) Option {
	return func(s *Server) { s.samplePath = path }
}

// WithMaxUploadBytes caps the request body size. Default: 16MB.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) { s.maxUpload = n }
}

// WithClock overrides the time source used for response metadata.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a Server listening on addr once started.
func New(addr string, eng *engine.Engine, opts ...Option) *Server {
	s := &Server{
		engine:     eng,
		reader:     document.NewReader(),
		samplePath: defaultSamplePath,
		maxUpload:  defaultMaxUploadBytes,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = cache.New(defaultCacheEntries, defaultCacheTTL, s.now)
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the full route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("POST /api/export", s.handleExport)
	mux.HandleFunc("GET /api/sample-text", s.handleSampleText)
	mux.HandleFunc("/", s.handleNotFound)
	return s.recoverPanics(s.limitBody(s.logRequests(mux)))
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	slog.Info("server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Endpoint not found")
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("handler panic", "path", r.URL.Path, "panic", rec)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
