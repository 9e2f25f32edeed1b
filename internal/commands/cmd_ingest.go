package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"cheatsheets/internal/cheatsheet"
	"cheatsheets/internal/contextutil"
	"cheatsheets/internal/icons"
	"cheatsheets/internal/ingest"
	"cheatsheets/internal/source"
	"cheatsheets/internal/storage"
)

type IngestCmd struct {
	flags *Flags

	// flags
	seedPath string
	dbPath   string
	docsDir  string
	all      bool
	export   bool
}

// NewIngestCmd creates a new ingest command
func NewIngestCmd(flags *Flags) *IngestCmd {
	return &IngestCmd{flags: flags}
}

// Register adds the ingest command to the application
func (cmd *IngestCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ingest",
		Usage:     "Fetch, parse and store cheatsheets",
		UsageText: "cheatsheets ingest [--seed PATH] [--db PATH] [--dir PATH [--all]] [--export] [ids...]",
		Description: `Assembles every enabled id of the seed file, or the ids given as arguments,
and stores the records in the sqlite database. The run report is printed as JSON.

With --dir the markdown is read from a local checkout of the posts directory
instead of the upstream repository, and --all ingests every document found there.

A failing document does not stop the others; the command exits non-zero when
any document failed.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "seed",
				Usage:       "path to the seed file (defaults to SEED_PATH)",
				Destination: &cmd.seedPath,
			},
			dbFlag(&cmd.dbPath),
			&cli.StringFlag{
				Name:        "dir",
				Usage:       "read markdown from this directory (defaults to DOCS_DIR)",
				Destination: &cmd.docsDir,
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "ingest every document found in --dir",
				Destination: &cmd.all,
			},
			&cli.BoolFlag{
				Name:        "export",
				Usage:       "write the SQL dump to EXPORT_PATH after storing",
				Destination: &cmd.export,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *IngestCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	logger := contextutil.LoggerFromContext(ctx)

	client := source.NewClient(cfg.DocsBaseURL, cfg.IconDirURL, cfg.UserAgent, cfg.HTTPTimeout)

	var fetcher cheatsheet.Fetcher = client
	docsDir := orDefault(cmd.docsDir, cfg.DocsDir)
	if docsDir != "" {
		fetcher = source.NewDir(docsDir)
	}

	ids := c.Args().Slice()
	switch {
	case len(ids) > 0:
	case cmd.all:
		if docsDir == "" {
			return fmt.Errorf("--all needs a documents directory (--dir or DOCS_DIR)")
		}
		scanned, err := source.NewDir(docsDir).Scan(ctx)
		if err != nil {
			return err
		}
		ids = scanned
		logger.InfoContext(ctx, "scanned documents", "dir", docsDir, "documents", len(ids))
	default:
		seedPath := orDefault(cmd.seedPath, cfg.SeedPath)
		entries, err := ingest.LoadSeed(seedPath)
		if err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
		ids = ingest.EnabledIDs(entries)
		logger.InfoContext(ctx, "loaded seed", "path", seedPath, "entries", len(entries), "enabled", len(ids))
	}

	db, err := openDB(ctx, orDefault(cmd.dbPath, cfg.DBPath))
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	iconCache := icons.NewCache(client,
		icons.WithDefaultURL(cfg.DefaultIconURL),
		icons.WithRetryOnError(cfg.IconRetryOnError),
	)
	repo := storage.NewCheatsheetRepo(db)
	pipeline := ingest.NewPipeline(
		cheatsheet.NewAssembler(fetcher, iconCache),
		repo,
		storage.NewRunRepo(db),
		cfg.IngestConcurrency,
	)

	report, runErr := pipeline.Run(ctx, ids)

	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if cmd.export {
		n, err := exportTo(ctx, repo, cfg.ExportPath)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "exported cheatsheets", "path", cfg.ExportPath, "rows", n)
	}

	if runErr != nil {
		return fmt.Errorf("%d of %d cheatsheets failed", report.Failed, report.Requested)
	}
	return nil
}

// exportTo writes the SQL dump of repo to path.
func exportTo(ctx context.Context, repo *storage.CheatsheetRepo, path string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}

	n, err := repo.Export(ctx, f)
	if err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("export cheatsheets: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close export file: %w", err)
	}
	return n, nil
}
