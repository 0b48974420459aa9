// Package http serves profile extraction over HTTP and fetches saved page
// snapshots from HTTP sources.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/profiled"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// Server defaults.
const (
	DefaultMaxConcurrent   = 2
	DefaultQueueTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// Server is the HTTP front end of the extraction service.
// Each profile request runs one extraction; at most MaxConcurrent run at a
// time and the rest queue for up to QueueTimeout.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router
	sem    *semaphore.Weighted

	// Addr is the bind address used by Open.
	Addr string

	Scraper      profiled.Scraper
	Logger       *slog.Logger
	QueueTimeout time.Duration
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithMaxConcurrent sets how many extractions may run at once.
// Defaults to DefaultMaxConcurrent.
func WithMaxConcurrent(n int64) ServerOption {
	return func(s *Server) {
		s.sem = semaphore.NewWeighted(n)
	}
}

// WithQueueTimeout sets how long a request waits for an extraction slot.
// Defaults to DefaultQueueTimeout.
func WithQueueTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.QueueTimeout = d
	}
}

// NewServer returns a Server that serves profiles produced by scraper.
func NewServer(scraper profiled.Scraper, logger *slog.Logger, opts ...ServerOption) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		sem:          semaphore.NewWeighted(DefaultMaxConcurrent),
		Scraper:      scraper,
		Logger:       logger,
		QueueTimeout: DefaultQueueTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/profile", s.handleProfile)
	s.router = r

	s.server = &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Open binds Addr and starts serving in the background.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.Addr, err)
	}
	s.ln = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("server stopped", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts down the server, waiting for in-flight requests
// up to DefaultShutdownTimeout.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP routes a request without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	logger := s.Logger.With("request_id", w.Header().Get(RequestIDHeader))

	vanity := r.URL.Query().Get("vanity_name")
	if vanity == "" {
		s.writeError(w, r, profiled.Errorf(profiled.EINVALID, "vanity_name required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.QueueTimeout)
	err := s.sem.Acquire(ctx, 1)
	cancel()
	if err != nil {
		logger.Warn("no extraction slot", "vanity", vanity, "err", err)
		s.writeError(w, r, profiled.Errorf(profiled.EUNAVAILABLE, "server busy, try again later"))
		return
	}
	defer s.sem.Release(1)

	p, err := s.Scraper.Scrape(r.Context(), vanity)
	if err != nil {
		if profiled.ErrorCode(err) == profiled.EINTERNAL {
			logger.Error("scrape failed", "vanity", vanity, "err", err)
		}
		s.writeError(w, r, err)
		return
	}
	if p.IsEmpty() {
		s.writeError(w, r, profiled.Errorf(profiled.ENOTFOUND, "profile not found"))
		return
	}

	s.writeJSON(w, r, http.StatusOK, profiled.NewResponse(p, nil))
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeJSON(w, r, ErrorStatusCode(profiled.ErrorCode(err)), profiled.NewResponse(nil, err))
}

// writeJSON writes the envelope with an ETag over the body. A matching
// If-None-Match on a successful response yields 304 without a body.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, resp profiled.Response) {
	body, err := json.Marshal(resp)
	if err != nil {
		s.Logger.Error("encoding response", "err", err)
		http.Error(w, "Internal error.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if status == http.StatusOK {
		etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// requestID propagates the caller's request ID or assigns a new one.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	profiled.EINVALID:      http.StatusBadRequest,
	profiled.ENOTFOUND:     http.StatusNotFound,
	profiled.EUNAUTHORIZED: http.StatusInternalServerError,
	profiled.EUNAVAILABLE:  http.StatusServiceUnavailable,
	profiled.EINTERNAL:     http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
// A missing session credential is a server configuration fault, so
// EUNAUTHORIZED maps to 500 rather than 401.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}
