package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cheatsheets/internal/cheatsheet"
	"cheatsheets/internal/config"
	"cheatsheets/internal/contextutil"
	"cheatsheets/internal/http"
	"cheatsheets/internal/icons"
	"cheatsheets/internal/ingest"
	"cheatsheets/internal/logging"
	"cheatsheets/internal/service"
	"cheatsheets/internal/source"
	"cheatsheets/internal/storage"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API serves cheatsheets parsed from the upstream markdown reference and
// stored in sqlite.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Cheatsheets API
//   description: |
//     Read API over structured cheatsheet records. Each record carries its
//     metadata and the ordered sections of the source document.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	cheatsheetRepo := storage.NewCheatsheetRepo(db)
	runRepo := storage.NewRunRepo(db)

	// Upstream client, icon cache and assembler
	client := source.NewClient(cfg.DocsBaseURL, cfg.IconDirURL, cfg.UserAgent, cfg.HTTPTimeout)
	iconCache := icons.NewCache(client,
		icons.WithDefaultURL(cfg.DefaultIconURL),
		icons.WithRetryOnError(cfg.IconRetryOnError),
	)
	pipeline := ingest.NewPipeline(
		cheatsheet.NewAssembler(client, iconCache),
		cheatsheetRepo,
		runRepo,
		cfg.IngestConcurrency,
	)

	seedIDs := func() ([]string, error) {
		entries, err := ingest.LoadSeed(cfg.SeedPath)
		if err != nil {
			return nil, err
		}
		return ingest.EnabledIDs(entries), nil
	}

	// Create router with dependencies
	deps := &http.Deps{
		Cheatsheets: service.NewCheatsheetService(cheatsheetRepo, runRepo),
		DB:          db,
		Ingester:    pipeline,
		SeedIDs:     seedIDs,
		Logger:      logger,
	}
	router := http.NewRouter(deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start ingestion in background after router is ready
	if cfg.IngestOnStart {
		go func() {
			ingestCtx := contextutil.WithLogger(ctx, logger.With("trigger", "startup"))
			ids, err := seedIDs()
			if err != nil {
				slog.Error("Failed to load seed file", "path", cfg.SeedPath, "error", err)
				return
			}
			slog.Info("Starting background ingestion", "documents", len(ids))
			if _, err := pipeline.Run(ingestCtx, ids); err != nil {
				slog.Error("Ingestion completed with errors", "error", err)
			} else {
				slog.Info("Ingestion completed successfully")
			}
		}()
	}

	// Start API server
	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", addr)
	slog.Debug("Upstream configuration", "docs_base_url", cfg.DocsBaseURL, "icon_dir_url", cfg.IconDirURL)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
}
