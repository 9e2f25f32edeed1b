package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"cheatsheets/internal/config"
	"cheatsheets/internal/storage"
)

// Flags carries state shared by every command.
type Flags struct {
	// Config is loaded in the Before hook and available to all commands.
	Config *config.Config
}

// dbFlag declares the per-command --db flag.
func dbFlag(dest *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "db",
		Usage:       "path to the sqlite database (defaults to DB_PATH)",
		Destination: dest,
	}
}

// orDefault returns value, or fallback when value is empty.
func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// openDB opens and migrates the database at path, creating its directory.
func openDB(ctx context.Context, path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := storage.New(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
