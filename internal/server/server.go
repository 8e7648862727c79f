// Package server wires the application together: database, services,
// handlers, routes, and the HTTP server lifecycle.
//
// This is the composition root. Every dependency is constructed and
// connected here; the layers below only see the interfaces they need.
// The service layer gets repository interfaces, the handlers get
// services, and nothing below this package touches chi directly.
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

	"github.com/ahndawn/ReciPlanner/internal/auth"
	"github.com/ahndawn/ReciPlanner/internal/handler"
	"github.com/ahndawn/ReciPlanner/internal/middleware"
	"github.com/ahndawn/ReciPlanner/internal/recipes"
	sqliteRepo "github.com/ahndawn/ReciPlanner/internal/repository/sqlite"
	"github.com/ahndawn/ReciPlanner/internal/service"
)

// Config holds everything the server needs to start. main.go populates it
// from the environment; tests populate it directly.
type Config struct {
	Port        int
	TemplateDir string
	StaticDir   string
	DBPath      string

	// SessionSecret signs session tokens. Must be at least 16 bytes.
	SessionSecret string

	// GitHub OAuth is optional. When ClientID is empty the /auth/github
	// routes are not registered and the login page's GitHub link 404s.
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string
}

// Server owns the router, the database handle, and the config. The database
// is closed during graceful shutdown in Start.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and assembles the full dependency chain. The
// recipe finder is passed in rather than built here so tests can supply
// a fake without a network.
func New(cfg Config, finder recipes.Finder, logger *slog.Logger) (*Server, error) {
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

	if err := s.setupRoutes(finder); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes builds services and handlers and maps them to routes.
//
// Middleware order: RequestID and RealIP first so the logger sees them,
// then Recoverer so panics in handlers become 500s, then request logging.
// Auth middleware is applied per route group, not globally.
func (s *Server) setupRoutes(finder recipes.Finder) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	render, err := handler.NewRenderer(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	sessions, err := auth.NewTokenSessions(s.config.SessionSecret)
	if err != nil {
		return fmt.Errorf("configuring sessions: %w", err)
	}

	var github *auth.GitHubProvider
	if s.config.GitHubClientID != "" {
		github = auth.NewGitHubProvider(
			s.config.GitHubClientID,
			s.config.GitHubClientSecret,
			s.config.GitHubCallbackURL,
		)
	}

	accounts := service.NewAccountService(s.db, auth.NewPasswordService(), s.logger)
	profile := service.NewProfileService(s.db, s.db, s.logger)

	authHandler := handler.NewAuthHandler(accounts, sessions, github, render, s.logger)
	homeHandler := handler.NewHomeHandler(accounts, profile, render, s.logger)
	profileHandler := handler.NewProfileHandler(profile, render, s.logger)
	searchHandler := handler.NewSearchHandler(finder, profile, render, s.logger)

	// Public routes. The home page personalizes when a session exists but
	// never requires one.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuth(sessions))
		r.Get("/", homeHandler.HandleHome)
	})

	s.router.Get("/register", authHandler.HandleRegisterForm)
	s.router.Post("/register", authHandler.HandleRegister)
	s.router.Get("/login", authHandler.HandleLoginForm)
	s.router.Post("/login", authHandler.HandleLogin)
	s.router.Get("/logout", authHandler.HandleLogout)

	if github != nil {
		s.router.Get("/auth/github/login", authHandler.HandleGitHubLogin)
		s.router.Get("/auth/github/callback", authHandler.HandleGitHubCallback)
	}

	// Everything below needs a valid session; anonymous requests are
	// redirected to /login.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(sessions))

		r.Post("/update-dietary-restrictions", profileHandler.HandleUpdateDiets)
		r.Post("/favorite-recipe", profileHandler.HandleFavorite)
		r.Post("/remove-favorite", profileHandler.HandleRemoveFavorite)
		r.Get("/get-favorites", profileHandler.HandleFavorites)

		r.Get("/search-recipes", searchHandler.HandleSearchPage)
		r.Post("/search", searchHandler.HandleSearch)
		r.Get("/search-by-ingredients", searchHandler.HandleIngredientsForm)
		r.Post("/search-by-ingredients", searchHandler.HandleIngredientsSearch)
		r.Get("/search-by-category", searchHandler.HandleCategoryForm)
		r.Post("/search-by-category", searchHandler.HandleCategorySearch)
		r.Get("/recipe-detail/{id}", searchHandler.HandleDetail)
	})

	return nil
}

// Router exposes the configured routes for handler tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the database.
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
