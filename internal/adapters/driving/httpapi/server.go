package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/custodia-labs/gate-discovery/internal/core/ports/driving"
	"github.com/custodia-labs/gate-discovery/internal/logger"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// writeTimeoutSlack is how long a response may keep writing after the
// request timeout fires.
const writeTimeoutSlack = 5 * time.Second

// Server serves an HTTP handler behind the standard middleware stack.
type Server struct {
	mu       sync.Mutex
	addr     string
	server   *http.Server
	listener net.Listener
}

// NewServer creates a server for the discovery service.
// requestTimeout bounds each request; zero disables the bound.
func NewServer(addr string, discovery driving.DiscoveryService, requestTimeout time.Duration) *Server {
	return NewHandlerServer(addr, NewHandler(discovery).Routes(), requestTimeout)
}

// NewHandlerServer creates a server for any handler behind the standard
// middleware stack. requestTimeout bounds each request and the response
// write; zero leaves both unbounded for long-lived streams.
func NewHandlerServer(addr string, handler http.Handler, requestTimeout time.Duration) *Server {
	server := &http.Server{
		Handler:           chain(handler, requestTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if requestTimeout > 0 {
		server.WriteTimeout = requestTimeout + writeTimeoutSlack
	}

	return &Server{addr: addr, server: server}
}

// Start binds the listener. If the port is 0, a random available port is chosen.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = listener
	s.addr = listener.Addr().String()
	return nil
}

// Serve accepts connections until ctx is cancelled, then shuts down
// gracefully. Start must be called first.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()
	if listener == nil {
		return errors.New("server not started")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info("listening on %s", s.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// Addr returns the listen address, resolved after Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
