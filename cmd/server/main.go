// Package main is the entry point for the bucket list server.
//
// The main package is kept minimal — its job is to:
// 1. Read configuration (env vars, with .env support for local dev)
// 2. Create dependencies (the logger)
// 3. Start the application
//
// All actual logic lives in imported packages (internal/server,
// internal/handler, etc.). The cmd/ directory is a Go convention for
// executable entry points; each executable gets its own directory with
// its own main.go.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/sakif/bucketlist/internal/server"
)

func main() {
	// Load .env if present. Missing file is fine — production sets real
	// env vars instead.
	_ = godotenv.Load()

	// tint is a slog handler with colourized, human-readable output.
	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
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

	// When running with `go run` the working directory is the project
	// root, so "web/templates" resolves directly.
	templateDir := "web/templates"
	if envDir := os.Getenv("TEMPLATE_DIR"); envDir != "" {
		templateDir = envDir
	}
	templateDir, _ = filepath.Abs(templateDir)

	// DB_PATH allows overriding for deployments, e.g.
	// DB_PATH=/var/lib/bucketlist/prod.db
	dbPath := "data/bucketlist.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}

	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	cfg := server.Config{
		Port:        port,
		TemplateDir: templateDir,
		DBPath:      dbPath,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
