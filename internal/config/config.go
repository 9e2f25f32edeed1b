package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Remote sources
	DocsDir          string        `env:"DOCS_DIR"`
	DocsBaseURL      string        `env:"DOCS_BASE_URL" envDefault:"https://raw.githubusercontent.com/Fechin/reference/main/source/_posts"`
	IconDirURL       string        `env:"ICON_DIR_URL" envDefault:"https://api.github.com/repos/Fechin/reference/contents/source/assets/icon"`
	DefaultIconURL   string        `env:"DEFAULT_ICON_URL" envDefault:"https://raw.githubusercontent.com/Fechin/reference/main/source/assets/icon/todoist.svg"`
	UserAgent        string        `env:"USER_AGENT" envDefault:"cheatsheets/1.0 (+https://github.com/Fechin/reference)"`
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	IconRetryOnError bool          `env:"ICON_RETRY_ON_ERROR" envDefault:"true"`

	// Ingestion
	IngestConcurrency int    `env:"INGEST_CONCURRENCY" envDefault:"10"`
	SeedPath          string `env:"SEED_PATH" envDefault:"./seed.yml"`
	IngestOnStart     bool   `env:"INGEST_ON_START" envDefault:"false"`

	// Storage
	DBPath     string `env:"DB_PATH" envDefault:"./data/cheatsheets.db"`
	ExportPath string `env:"EXPORT_PATH" envDefault:"./schema.sql"`

	// Server and logging
	APIPort   string `env:"API_PORT" envDefault:"9000"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the result.
// If a .env file exists in the current directory or a parent directory, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	// Create the database directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// Validate checks field formats and ranges.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DocsBaseURL, validation.Required, is.URL),
		validation.Field(&c.IconDirURL, validation.Required, is.URL),
		validation.Field(&c.DefaultIconURL, validation.Required, is.URL),
		validation.Field(&c.HTTPTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.IngestConcurrency, validation.Min(1)),
		validation.Field(&c.SeedPath, validation.Required),
		validation.Field(&c.DBPath, validation.Required),
		validation.Field(&c.APIPort, validation.Required, is.Port),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In("text", "json")),
	)
}

// loadDotEnv loads the first .env file found in the working directory or up
// to four of its parents. Missing files are ignored.
func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}
