// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "composition root" — it connects handlers, middleware,
// and routes in one place. main.go stays minimal: it loads config, builds a
// logger, and calls server.New + Start.
//
// DEPENDENCY INJECTION FLOW:
// main.go creates config → passed to Server
// Server.New() creates: sqlite.DB → services → handlers → routes
//
// Each layer only receives what it needs: services get repository interfaces
// (not the concrete sqlite.DB), handlers get services (not repositories).
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/bucketlist/internal/auth"
	"github.com/sakif/bucketlist/internal/handler"
	"github.com/sakif/bucketlist/internal/middleware"
	sqliteRepo "github.com/sakif/bucketlist/internal/repository/sqlite"
	"github.com/sakif/bucketlist/internal/service"
)

// Config holds server configuration in a single value so new options don't
// ripple through function signatures.
type Config struct {
	Port        int
	TemplateDir string
	DBPath      string
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL is flushed and the file lock
// released.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with the given config and wires the whole dependency
// chain: database → auth components → services → handlers → routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET  /register, POST /register    → sign-up form / create account
// GET  /login,    POST /login       → sign-in form / open session
// GET  /metrics                     → Prometheus metrics
// ... everything below requires a valid session cookie:
// GET  /                            → bucket list + add form
// POST /items                       → add item
// GET  /items/{id}/edit             → edit form
// POST /items/{id}/edit             → save edit
// POST /items/{id}/delete           → delete item
// POST /logout                      → close session
// GET  /groups, POST /groups        → list / create groups
// GET  /groups/{id}                 → shared group view
//
// MIDDLEWARE ORDER MATTERS — it executes in the order added:
// RequestID → RealIP → Recoverer → Logger → Metrics.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics)

	renderer, err := handler.NewRenderer(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	// s.db (sqlite.DB) implements every repository interface; the services
	// receive only the interfaces they depend on.
	sessions := auth.NewSessionManager(s.db)
	passwords := auth.NewPasswordService()

	authService := service.NewAuthService(s.db, sessions, passwords, s.logger)
	itemService := service.NewItemService(s.db, s.logger)
	groupService := service.NewGroupService(s.db, s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, renderer, s.logger)
	itemHandler := handler.NewItemHandler(itemService, groupService, renderer, s.logger)
	groupHandler := handler.NewGroupHandler(groupService, renderer, s.logger)

	// Public routes: anyone can register, log in, or scrape metrics.
	s.router.Get("/register", authHandler.HandleRegisterForm)
	s.router.Post("/register", authHandler.HandleRegister)
	s.router.Get("/login", authHandler.HandleLoginForm)
	s.router.Post("/login", authHandler.HandleLogin)
	s.router.Handle("/metrics", promhttp.Handler())

	// Protected routes: RequireAuth redirects to /login without a valid
	// session cookie.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(sessions))

		r.Get("/", itemHandler.HandleList)
		r.Post("/items", itemHandler.HandleAdd)
		r.Get("/items/{id}/edit", itemHandler.HandleEditForm)
		r.Post("/items/{id}/edit", itemHandler.HandleEdit)
		r.Post("/items/{id}/delete", itemHandler.HandleDelete)

		r.Post("/logout", authHandler.HandleLogout)

		r.Get("/groups", groupHandler.HandleList)
		r.Post("/groups", groupHandler.HandleCreate)
		r.Get("/groups/{id}", groupHandler.HandleShow)
	})

	return nil
}

// Start starts the HTTP server and blocks until a shutdown signal or a
// server error.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new connections
// 2. Wait up to 30s for in-flight requests to finish
// 3. Close the database connection (deferred, runs even on panic)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
