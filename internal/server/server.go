// Package server exposes graph building and export over HTTP.
//
// Routes:
//
//	GET  /healthz                           liveness and version
//	GET  /api/formats                       supported export formats
//	POST /api/sessions                      create a session
//	POST /api/sessions/{id}/graph           build from a bounding box
//	GET  /api/sessions/{id}/graph           the session's current graph
//	GET  /api/sessions/{id}/export/{format} download the current graph
//	POST /api/export/{format}               convert a posted graph
//
// Each session keeps only its most recent graph, in memory.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/roadgraph/pkg/session"
)

// DefaultAddr is the listen address used when Options.Addr is empty.
const DefaultAddr = ":8080"

// maxBodyBytes bounds request bodies. Posted graphs can be large.
const maxBodyBytes = 32 << 20

// Options configures a Server.
type Options struct {
	Addr           string
	AllowedOrigins []string        // CORS origins; empty allows none
	Fetcher        session.Fetcher // provider access for builds
	Store          session.Store   // session storage (MemoryStore)
	SessionTTL     time.Duration   // idle lifetime (session.DefaultTTL)
	Logger         *log.Logger
}

// Server is the HTTP API.
type Server struct {
	addr    string
	origins []string
	store   session.Store
	svc     *session.Service
	ttl     time.Duration
	logger  *log.Logger
}

// New creates a Server from opts.
func New(opts Options) *Server {
	s := &Server{
		addr:    opts.Addr,
		origins: opts.AllowedOrigins,
		store:   opts.Store,
		ttl:     opts.SessionTTL,
		logger:  opts.Logger,
	}
	if s.addr == "" {
		s.addr = DefaultAddr
	}
	if s.store == nil {
		s.store = session.NewMemoryStore()
	}
	if s.ttl <= 0 {
		s.ttl = session.DefaultTTL
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.svc = session.NewService(opts.Fetcher, s.logger)
	return s
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.addr }

// Handler returns the router with all middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/formats", s.handleFormats)
		r.Post("/export/{format}", s.handleConvert)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Use(s.loadSession)
			r.Post("/graph", s.handleBuild)
			r.Get("/graph", s.handleGetGraph)
			r.Get("/export/{format}", s.handleExport)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully. Expired
// sessions are swept every minute.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweepSessions(ctx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

func (s *Server) sweepSessions(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.store.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "err", err)
			}
		}
	}
}
