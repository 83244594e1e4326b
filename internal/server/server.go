package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/agbru/mathsolve/internal/graph"
	"github.com/agbru/mathsolve/internal/logging"
	"github.com/agbru/mathsolve/internal/metrics"
	"github.com/agbru/mathsolve/internal/orchestration"
	"github.com/agbru/mathsolve/internal/sysmon"
)

// Solver answers a query. *orchestration.Aggregator satisfies it.
type Solver interface {
	Solve(ctx context.Context, query string, reporter orchestration.ProgressReporter, out io.Writer) (orchestration.Report, error)
}

// Config holds the HTTP server settings.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	// QueryTimeout bounds a /search request, arbitration included.
	QueryTimeout time.Duration
	// RateLimit and RateBurst configure the per-client token bucket. A
	// non-positive RateLimit disables limiting.
	RateLimit float64
	RateBurst int
	// Providers names the providers behind the solver, reported by /health.
	Providers []string
	Security  SecurityConfig
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    90 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		QueryTimeout:    60 * time.Second,
		RateLimit:       5,
		RateBurst:       10,
		Security:        DefaultSecurityConfig(),
	}
}

// Server serves the query pipeline over HTTP.
type Server struct {
	cfg       Config
	solver    Solver
	renderer  graph.Renderer
	metrics   *Metrics
	logger    logging.Logger
	limiter   *ipRateLimiter
	memory    *metrics.MemoryCollector
	monitor   *sysmon.Monitor
	startTime time.Time

	mu       sync.Mutex
	listener net.Listener
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics sets the metrics instance, letting callers register their own
// collectors on its registry beforehand.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithSystemMonitor reports the monitor's latest sample in /health.
func WithSystemMonitor(m *sysmon.Monitor) Option {
	return func(s *Server) { s.monitor = m }
}

// New creates a server. renderer serves /graph; a nil renderer makes every
// /graph request fail with 422.
func New(solver Solver, renderer graph.Renderer, cfg Config, opts ...Option) *Server {
	s := &Server{
		cfg:       cfg,
		solver:    solver,
		renderer:  renderer,
		memory:    metrics.NewMemoryCollector(),
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	if s.logger == nil {
		s.logger = logging.NopLogger{}
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = newIPRateLimiter(cfg.RateLimit, burst)
	}
	return s
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", s.chain(s.handleSearch))
	mux.HandleFunc("/graph", s.chain(s.handleGraph))
	mux.HandleFunc("/points", s.chain(s.handlePoints))
	mux.HandleFunc("/health", s.chain(s.handleHealth))
	// Scrapes are exempt from rate limiting.
	mux.HandleFunc("/metrics", requestIDMiddleware(SecurityMiddleware(s.cfg.Security, s.metricsMiddleware(s.handleMetrics))))
	return mux
}

func (s *Server) chain(h http.HandlerFunc) http.HandlerFunc {
	return requestIDMiddleware(
		SecurityMiddleware(s.cfg.Security,
			s.metricsMiddleware(
				s.rateLimitMiddleware(h))))
}

// Addr returns the bound address once Start is listening.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start listens on cfg.Addr and serves until ctx is canceled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", logging.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
