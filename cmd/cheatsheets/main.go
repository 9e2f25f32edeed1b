package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"cheatsheets/internal/commands"
	"cheatsheets/internal/config"
	"cheatsheets/internal/contextutil"
	"cheatsheets/internal/logging"
)

// Build information. Populated at build-time via -ldflags flag.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "cheatsheets",
		Usage:     "Ingest and browse developer cheatsheets",
		UsageText: "cheatsheets [global options] command [command options]",
		Description: `cheatsheets fetches markdown cheatsheets from the upstream repository,
parses them into structured records and stores them in a sqlite database.

Configuration is read from the environment and from a .env file in the
current directory or one of its parents.`,
		Version: version,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load()
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Logs go to stderr so command output stays machine-readable.
			logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
			slog.SetDefault(logger)

			return contextutil.WithLogger(ctx, logger), nil
		},
	}

	app = commands.NewIngestCmd(flags).Register(app)
	app = commands.NewExportCmd(flags).Register(app)
	app = commands.NewShowCmd(flags).Register(app)

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
