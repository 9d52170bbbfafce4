// Package health serves the connector's keep-alive HTTP endpoint.
//
// Hosting platforms that probe web processes expect something to answer
// on a port; the connector runs a child process that may not listen at
// all, so this tiny server answers GET /ping on its behalf.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/log"
)

const (
	// DefaultPort is used when neither a flag nor EnvPort supplies a port.
	DefaultPort = 8080

	// EnvPort names the environment variable consulted for the listen
	// port when no flag is given. Hosting platforms set this.
	EnvPort = "PORT"

	shutdownTimeout = 5 * time.Second
)

// PingResponse is the body returned by GET /ping.
type PingResponse struct {
	Status    string `json:"status"`
	PID       int    `json:"pid"`
	Uptime    string `json:"uptime"`
	StartedAt string `json:"started_at"`
}

// Server is the keep-alive HTTP server. It exposes a single route,
// GET /ping, and nothing else.
type Server struct {
	port      int
	server    *http.Server
	startedAt time.Time

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a keep-alive server that will listen on the given
// TCP port. A port of 0 picks a free port; see Port.
func NewServer(port int) *Server {
	s := &Server{
		port:      port,
		startedAt: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", s.handlePing)

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start begins listening and serves in the background. Use Stop to shut
// the server down. Callers that want a blocking lifecycle tied to a
// context should use Run instead.
func (s *Server) Start() error {
	listener, err := s.listen()
	if err != nil {
		return err
	}
	go func() { _ = s.server.Serve(listener) }()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run listens and serves until ctx is canceled, then shuts down
// gracefully. It returns nil on a clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	listener, err := s.listen()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Port returns the port the server is actually bound to, or 0 if it is
// not listening yet. Useful when the server was created with port 0.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return 0
	}
	return s.listener.Addr().(*net.TCPAddr).Port
}

func (s *Server) listen() (net.Listener, error) {
	addr := fmt.Sprintf(":%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	log.Info("keep-alive server listening", "addr", listener.Addr().String())
	return listener, nil
}

// handlePing responds with process liveness information.
func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	resp := PingResponse{
		Status:    "ok",
		PID:       os.Getpid(),
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
		StartedAt: s.startedAt.Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeJSON marshals v as JSON and writes it to w with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
