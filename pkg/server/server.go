package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/mfadel/weblet/pkg/router"
	"github.com/mfadel/weblet/pkg/static"
)

// Handler is re-exported so embedders registering routes only need this
// package and wire.
type Handler = router.Handler

// Config holds the construction-time settings of a Server.
type Config struct {
	Host         string // default "localhost"
	Port         int    // default 8080
	DocumentRoot string // default "./public", created if missing
}

// DefaultConfig returns the default construction settings.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         8080,
		DocumentRoot: "./public",
	}
}

// Recorder receives per-connection and per-request observations. The
// observability package provides a Prometheus-backed implementation.
type Recorder interface {
	ConnOpened()
	ConnClosed()
	ObserveRequest(method string, status int, duration time.Duration)
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithReadTimeout bounds how long one connection may take to deliver a
// full request. Zero disables the deadline. Default: 30s.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) { s.readTimeout = d }
}

// WithWriteTimeout bounds how long writing one response may take.
// Zero disables the deadline. Default: 30s.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) { s.writeTimeout = d }
}

// WithIndexFile sets the directory index filename. Default: index.html.
func WithIndexFile(name string) Option {
	return func(s *Server) { s.indexFile = name }
}

// WithListings enables or disables directory listings. Default: enabled.
func WithListings(enabled bool) Option {
	return func(s *Server) { s.listings = enabled }
}

// WithRecorder sets the metrics recorder. Default: none.
func WithRecorder(r Recorder) Option {
	return func(s *Server) { s.recorder = r }
}

// Server is one independent HTTP server instance. Multiple servers can
// coexist in a process; they share no state.
type Server struct {
	cfg          Config
	logger       *slog.Logger
	routes       *router.Table
	middleware   []Middleware
	static       *static.Resolver
	readTimeout  time.Duration
	writeTimeout time.Duration
	recorder     Recorder

	indexFile string
	listings  bool

	mu sync.Mutex
	ln net.Listener
}

// New creates a Server from cfg, applying any options. The document
// root directory is created if it does not exist.
func New(cfg Config, opts ...Option) (*Server, error) {
	def := DefaultConfig()
	if cfg.Host == "" {
		cfg.Host = def.Host
	}
	if cfg.Port == 0 {
		cfg.Port = def.Port
	}
	if cfg.DocumentRoot == "" {
		cfg.DocumentRoot = def.DocumentRoot
	}

	s := &Server{
		cfg:          cfg,
		logger:       slog.Default(),
		routes:       router.New(),
		readTimeout:  30 * time.Second,
		writeTimeout: 30 * time.Second,
		indexFile:    "index.html",
		listings:     true,
	}
	for _, opt := range opts {
		opt(s)
	}

	resolver, err := static.NewResolver(cfg.DocumentRoot,
		static.WithIndexFile(s.indexFile),
		static.WithListings(s.listings),
	)
	if err != nil {
		return nil, fmt.Errorf("static resolver: %w", err)
	}
	s.static = resolver

	return s, nil
}

// AddRoute registers a handler for an exact method and path. The last
// registration for a pair wins. Must be called before ListenAndServe.
func (s *Server) AddRoute(method, path string, h Handler) {
	s.routes.Add(method, path, h)
}

// Handle registers a GET handler for the path.
func (s *Server) Handle(path string, h Handler) {
	s.routes.Handle(path, h)
}

// AddMiddleware appends to the middleware chain. Middleware run in
// registration order on every request. Must be called before
// ListenAndServe.
func (s *Server) AddMiddleware(m Middleware) {
	s.middleware = append(s.middleware, m)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// ListenAndServe binds the configured address and serves until Shutdown
// is called or the listener fails. It blocks.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("binding %s: %w", s.Addr(), err)
	}
	s.logger.Info("server listening",
		"addr", ln.Addr().String(),
		"document_root", s.static.Root(),
	)
	return s.Serve(ln)
}

// Serve accepts connections from ln, one goroutine per connection, so a
// slow client never blocks the accept loop. Transient accept errors are
// logged and the loop continues; a failing listener is fatal and ends
// the server. Returns nil after Shutdown closes the listener.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				s.logger.Warn("accept failed, retrying", "error", err)
				continue
			}
			return fmt.Errorf("accept: %w", err)
		}
		go s.handleConn(conn)
	}
}

// Shutdown closes the listening socket, unblocking ListenAndServe.
// Connections already being served run to completion on their own
// goroutines.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	err := s.ln.Close()
	s.ln = nil
	return err
}
