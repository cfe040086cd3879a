// Package server exposes route computation over HTTP.
//
// Routes:
//
//	GET  /healthz     build information
//	GET  /v1/catalog  the star catalog
//	POST /v1/routes   compute a route from a config and options
//	POST /v1/graph    render the prerequisite graph (?format=dot|svg)
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/starroute/pkg/catalog"
	"github.com/matzehuels/starroute/pkg/errors"
	"github.com/matzehuels/starroute/pkg/route"
)

// Defaults for [Server].
const (
	DefaultAddr           = "127.0.0.1:8080"
	DefaultRequestTimeout = 2 * time.Minute
	DefaultShutdownGrace  = 5 * time.Second
	maxBodyBytes          = 1 << 20
)

// Server serves the route API.
type Server struct {
	runner  *route.Runner
	catalog *catalog.Catalog
	logger  *log.Logger
	timeout time.Duration

	mu       sync.RWMutex
	listener net.Listener
	srv      *http.Server
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRequestTimeout bounds each request, including optimization.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a server computing routes with runner against cat.
func New(runner *route.Runner, cat *catalog.Catalog, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		catalog: cat,
		logger:  log.Default(),
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(observe)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Post("/routes", s.handleRoutes)
		r.Post("/graph", s.handleGraph)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if err := errors.ValidateAddr(addr); err != nil {
		return err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "listen %s", addr)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	s.mu.Lock()
	s.listener, s.srv = ln, srv
	s.mu.Unlock()

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errc
	return nil
}

// Addr returns the bound address once the server is listening.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
