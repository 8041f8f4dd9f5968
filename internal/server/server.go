// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where the whole
// dependency chain is assembled in one place:
//
//	config → sqlite.DB → services → handlers → routes
//
// Handlers never touch the database directly; services never touch HTTP.
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
	"github.com/go-chi/cors"

	"github.com/sakif/portfolio-backend/internal/auth"
	"github.com/sakif/portfolio-backend/internal/config"
	"github.com/sakif/portfolio-backend/internal/handler"
	"github.com/sakif/portfolio-backend/internal/middleware"
	sqliteRepo "github.com/sakif/portfolio-backend/internal/repository/sqlite"
	"github.com/sakif/portfolio-backend/internal/service"
	"github.com/sakif/portfolio-backend/internal/upload"
)

// Server owns the router and the resources that live as long as the process:
// the database connection (closed on shutdown) and the uploads store.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with the given config: opens the database, builds the
// service and handler layers, seeds the admin account, and registers routes.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close() // Clean up DB if wiring fails
		return nil, err
	}

	return s, nil
}

// setupRoutes wires middleware, services, handlers and routes.
//
// ROUTE STRUCTURE:
//
//	GET    /                → health status object
//	GET    /uploads/*       → uploaded post images (static)
//	POST   /api/auth/login  → issue bearer token
//	GET    /api/posts       → list posts (public)
//	GET    /api/posts/{id}  → single post with rendered HTML (public)
//	POST   /api/posts       → create post          [bearer]
//	PUT    /api/posts/{id}  → update post          [bearer]
//	DELETE /api/posts/{id}  → delete post          [bearer]
func (s *Server) setupRoutes() error {
	// === Global Middleware ===
	// Order matters: these run on every request, in the order added.
	s.router.Use(chimiddleware.RequestID) // Adds X-Request-ID header
	s.router.Use(chimiddleware.RealIP)    // Extracts real IP from X-Forwarded-For
	s.router.Use(chimiddleware.Recoverer) // Recovers from panics, returns 500
	s.router.Use(middleware.Logger(s.logger))

	// The frontend is hosted separately (static site), so every browser call
	// to this API is cross-origin.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// === Dependencies ===
	tokens, err := auth.NewTokenService(s.cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	uploads, err := upload.NewStore(s.cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("creating upload store: %w", err)
	}

	passwords := auth.NewPasswordService()
	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	postService := service.NewPostService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	postHandler := handler.NewPostHandler(postService, uploads, s.logger)

	// === Admin seeding ===
	// One-time, idempotent. Without ADMIN_PASSWORD and with no existing row
	// the blog is read-only until the operator seeds or resets a password —
	// the server still starts, it just can't mint a first login.
	if err := s.seedAdmin(authService); err != nil {
		return err
	}

	// === Static uploads ===
	// GET /uploads/img.jpg → serves {UploadDir}/img.jpg
	fileServer := http.FileServer(http.Dir(uploads.Dir()))
	s.router.Handle(upload.URLPrefix+"/*", http.StripPrefix(upload.URLPrefix+"/", fileServer))

	// === Routes ===
	s.router.Get("/", handler.HandleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Get("/posts", postHandler.HandleList)
		r.Get("/posts/{id}", postHandler.HandleGetByID)

		// Mutations sit behind the bearer-token gate.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Post("/posts", postHandler.HandleCreate)
			r.Put("/posts/{id}", postHandler.HandleUpdate)
			r.Delete("/posts/{id}", postHandler.HandleDelete)
		})
	})

	return nil
}

// seedAdmin creates the admin account at first startup.
func (s *Server) seedAdmin(authService *service.AuthService) error {
	if s.cfg.AdminPassword == "" {
		s.logger.Warn("ADMIN_PASSWORD not set — skipping admin seeding")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := authService.SeedAdmin(ctx, s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}

	if created {
		s.logger.Info("seeded admin user", slog.String("username", "admin"))
	} else {
		s.logger.Info("admin user already exists")
	}

	return nil
}

// Start starts the HTTP server and blocks until shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new connections on SIGINT/SIGTERM
// 2. Wait up to 30s for in-flight requests to finish
// 3. Close the database (flushes the WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
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
			slog.Int("port", s.cfg.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.cfg.Port)),
			slog.String("database", s.cfg.DBPath),
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
