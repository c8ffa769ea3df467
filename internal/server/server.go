// Package server exposes the question router over HTTP and WebSocket.
// Each API session owns an independent conversation memory; turns within
// one session are serialized, sessions are fully isolated from each other.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/skyrouteai/skyroute/internal/router"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Sessions abandoned for longer than sessionIdleTTL are dropped by a
// periodic sweep so the session map stays bounded.
const (
	sessionIdleTTL     = 30 * time.Minute
	sessionSweepPeriod = 5 * time.Minute
)

// Server serves the travel-question API.
type Server struct {
	cfg        Config
	sessions   *sessionManager
	mux        chi.Router
	httpServer *http.Server
	stopSweep  chan struct{}
}

// New creates a Server. newRouter builds one session's router; it is
// called once per created session so every session gets fresh memory.
func New(cfg Config, newRouter func() *router.Router) *Server {
	s := &Server{
		cfg:       cfg,
		sessions:  newSessionManager(newRouter),
		stopSweep: make(chan struct{}),
	}
	s.mux = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/ask", s.handleAsk)
		r.Post("/sessions", s.handleCreateSession)
		r.Post("/sessions/{id}/ask", s.handleSessionAsk)
		r.Delete("/sessions/{id}", s.handleDeleteSession)
	})

	r.Get("/ws", s.handleWebSocket)

	return r
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.mux }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go s.sweepSessions()

	log.Printf("skyroute server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// sweepSessions drops idle sessions on a timer until shutdown.
func (s *Server) sweepSessions() {
	t := time.NewTicker(sessionSweepPeriod)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if n := s.sessions.sweep(sessionIdleTTL); n > 0 {
				log.Printf("server: dropped %d idle sessions", n)
			}
		case <-s.stopSweep:
			return
		}
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.stopSweep)
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
