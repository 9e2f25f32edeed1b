package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"cheatsheets/internal/storage"
)

type ExportCmd struct {
	flags *Flags

	// flags
	dbPath  string
	outPath string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{flags: flags}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Write the cheatsheets table as SQL",
		UsageText: "cheatsheets export [--db PATH] [--out PATH]",
		Description: `Writes a SQL dump of the cheatsheets table. The dump starts with
DROP TABLE IF EXISTS so it can be loaded over an older copy.

Use --out - to write to standard output.`,
		Flags: []cli.Flag{
			dbFlag(&cmd.dbPath),
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file (defaults to EXPORT_PATH)",
				Destination: &cmd.outPath,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	db, err := openDB(ctx, orDefault(cmd.dbPath, cfg.DBPath))
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	repo := storage.NewCheatsheetRepo(db)
	out := orDefault(cmd.outPath, cfg.ExportPath)

	if out == "-" {
		if _, err := repo.Export(ctx, c.Root().Writer); err != nil {
			return fmt.Errorf("export cheatsheets: %w", err)
		}
		return nil
	}

	n, err := exportTo(ctx, repo, out)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(c.Root().Writer, "Exported %d cheatsheets to %s\n", n, out)
	return nil
}
