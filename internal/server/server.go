package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/haguru/blogd/internal/interfaces"
)

var (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 30 * time.Second
)

type Server struct {
	Port   string
	Host   string
	server *http.Server
	router *mux.Router
	Logger interfaces.Logger
}

// NewServer creates a new Server instance with the specified host and port.
func NewServer(host, port string, logger interfaces.Logger) interfaces.Server {
	router := mux.NewRouter()
	server := &http.Server{
		Addr:         host + ":" + port,
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	return &Server{
		Host:   host,
		Port:   port,
		server: server,
		router: router,
		Logger: logger,
	}
}

// AddRoute registers handler for route. When methods are given the route
// only matches those methods; other methods get a 405.
func (s *Server) AddRoute(route string, handler http.HandlerFunc, methods ...string) error {
	if route == "" {
		return fmt.Errorf("route cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler for %s cannot be nil", route)
	}

	r := s.router.HandleFunc(route, handler)
	if len(methods) > 0 {
		r.Methods(methods...)
	}
	if err := r.GetError(); err != nil {
		return fmt.Errorf("failed to add route %s: %w", route, err)
	}
	s.Logger.Info("Route added", "route", route, "methods", methods)
	return nil
}

// Use appends middleware run on every matched route, in order.
func (s *Server) Use(middleware ...func(http.Handler) http.Handler) {
	for _, m := range middleware {
		s.router.Use(m)
	}
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server and blocks until it stops. A
// graceful Shutdown is not an error.
func (s *Server) ListenAndServe() error {
	s.Logger.Info("Starting server", "host", s.Host, "port", s.Port)
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.Logger.Error("Failed to start server", "error", err)
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("Shutting down server")
	return s.server.Shutdown(ctx)
}
