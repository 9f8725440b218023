package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultRequestTimeout = 15 * time.Second
	drainTimeout          = 10 * time.Second
)

// Server serves the bundle API and drains in-flight requests on stop.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	ready           chan net.Addr
}

// NewServer creates a Server listening on port. The write timeout is kept
// above requestTimeout so the timeout middleware can still answer 504.
func NewServer(handler http.Handler, port string, requestTimeout time.Duration) *Server {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	srv := &http.Server{
		Addr:              net.JoinHostPort("", port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       time.Minute,
		MaxHeaderBytes:    1 << 20,
	}
	return &Server{httpServer: srv, shutdownTimeout: drainTimeout, ready: make(chan net.Addr, 1)}
}

// Ready yields the bound address once the listener is open.
func (s *Server) Ready() <-chan net.Addr {
	return s.ready
}

// Run serves until ctx is done or the process receives SIGINT or SIGTERM.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	log.Info().Str("addr", ln.Addr().String()).Msg("Bundle API listening")
	select {
	case s.ready <- ln.Addr():
	default:
	}

	served := make(chan error, 1)
	go func() { served <- s.httpServer.Serve(ln) }()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("Stop requested, draining connections")
	}
	return s.Shutdown()
}

// Shutdown stops accepting connections and waits for active requests.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Dur("timeout", s.shutdownTimeout).Msg("Drain timed out")
		return err
	}
	log.Info().Msg("Bundle API stopped")
	return nil
}
