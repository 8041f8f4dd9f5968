// Package main is the entry point for the portfolio backend server.
//
// main stays minimal: read configuration, build the logger, hand everything
// to internal/server. All actual logic lives in the internal packages so it
// can be tested without running a binary.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/portfolio-backend/internal/config"
	"github.com/sakif/portfolio-backend/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional; env vars override)")
	flag.Parse()

	// CONFIG_FILE is the env-var spelling of -config, for deployments that
	// can't pass flags (systemd Environment=, container env).
	path := *configPath
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg, err := config.Load(path)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Ensure the data directory exists before SQLite tries to create the
	// file inside it. 0755: owner rwx, others rx.
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(cfg.DBPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
