// Package main is the entry point for the ReciPlanner server.
//
// main stays thin: read configuration from the environment, build the
// shared dependencies (logger, recipe API client), and hand off to
// internal/server which owns the rest of the wiring.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ahndawn/ReciPlanner/internal/recipes/spoonacular"
	"github.com/ahndawn/ReciPlanner/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	templateDir, _ := filepath.Abs("web/templates")
	staticDir, _ := filepath.Abs("web/static")

	dbPath := "data/reciplanner.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// SESSION_SECRET signs session tokens. Generate one with:
	//   SESSION_SECRET=$(openssl rand -hex 32)
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		logger.Error("SESSION_SECRET is required")
		os.Exit(1)
	}

	apiKey := os.Getenv("SPOONACULAR_API_KEY")
	if apiKey == "" {
		logger.Warn("SPOONACULAR_API_KEY not set, recipe searches will fail")
	}
	finder := spoonacular.New(spoonacular.DefaultConfig(apiKey), logger)

	githubClientID := os.Getenv("GITHUB_CLIENT_ID")
	githubClientSecret := os.Getenv("GITHUB_CLIENT_SECRET")
	githubCallbackURL := os.Getenv("GITHUB_CALLBACK_URL")
	if githubCallbackURL == "" {
		githubCallbackURL = fmt.Sprintf("http://localhost:%d/auth/github/callback", port)
	}
	if githubClientID == "" {
		logger.Info("GITHUB_CLIENT_ID not set, GitHub sign-in disabled")
	}

	cfg := server.Config{
		Port:               port,
		TemplateDir:        templateDir,
		StaticDir:          staticDir,
		DBPath:             dbPath,
		SessionSecret:      sessionSecret,
		GitHubClientID:     githubClientID,
		GitHubClientSecret: githubClientSecret,
		GitHubCallbackURL:  githubCallbackURL,
	}

	srv, err := server.New(cfg, finder, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
