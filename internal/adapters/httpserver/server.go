// Package httpserver exposes the journal over a REST API: auth, subscription,
// trade CRUD and the analytics endpoints (summary, calendar, reports,
// contract specifications).
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"futuresjournal/internal/app"
	"futuresjournal/internal/ports"
)

// Config holds server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	JWTSecret      string
	TokenTTL       time.Duration
	Service        *app.JournalService
	Users          ports.UserRepository
	Logger         ports.Logger
}

// Server is the HTTP front of the journal.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    ports.Logger
}

// New creates the server and mounts all routes.
func New(cfg Config) (*Server, error) {
	if cfg.Service == nil {
		return nil, errors.New("journal service is required")
	}
	if cfg.Users == nil {
		return nil, errors.New("user repository is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT secret is required")
	}

	auth := newAuthHandlers(cfg.Users, cfg.Logger, cfg.JWTSecret, cfg.TokenTTL)
	trades := newTradeHandlers(cfg.Service, cfg.Logger)
	reports := newAnalyticsHandlers(cfg.Service, cfg.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handleHealth)
		r.Post("/auth/signup", auth.handleSignup)
		r.Post("/auth/login", auth.handleLogin)

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(auth.authenticate)
			r.Get("/auth/me", auth.handleMe)
			r.Get("/subscription/current", auth.handleCurrentSubscription)
			r.Post("/subscription/update", auth.handleUpdateSubscription)
			trades.registerRoutes(r)
			reports.registerRoutes(r)
		})
	})

	srv := &Server{
		router: r,
		log:    cfg.Logger,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	return srv, nil
}

// Router exposes the mux, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info(context.Background(), "HTTP server listening", map[string]interface{}{"addr": s.server.Addr})
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains connections gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info(ctx, "Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
