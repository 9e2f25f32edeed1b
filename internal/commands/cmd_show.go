package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"cheatsheets/internal/cheatsheet"
	"cheatsheets/internal/service"
	"cheatsheets/internal/storage"
)

const defaultWrapWidth = 100

type ShowCmd struct {
	flags *Flags

	// flags
	dbPath  string
	section string
	style   string
	width   int64
	raw     bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags) *ShowCmd {
	return &ShowCmd{flags: flags}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Render a stored cheatsheet in the terminal",
		UsageText: "cheatsheets show <id> [--db PATH] [--section TITLE] [--raw]",
		Flags: []cli.Flag{
			dbFlag(&cmd.dbPath),
			&cli.StringFlag{
				Name:        "section",
				Aliases:     []string{"s"},
				Usage:       "only show the section with this title",
				Destination: &cmd.section,
			},
			&cli.StringFlag{
				Name:        "style",
				Usage:       "glamour style (dark, light, notty, ...)",
				Value:       "dark",
				Destination: &cmd.style,
			},
			&cli.Int64Flag{
				Name:        "width",
				Usage:       "word wrap width",
				Value:       defaultWrapWidth,
				Destination: &cmd.width,
			},
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print the markdown without rendering",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	id := strings.TrimSpace(c.Args().First())
	if id == "" {
		return fmt.Errorf("missing cheatsheet id. Usage: %s", c.UsageText)
	}

	db, err := openDB(ctx, orDefault(cmd.dbPath, cmd.flags.Config.DBPath))
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	svc := service.NewCheatsheetService(storage.NewCheatsheetRepo(db), nil)

	sheet, err := svc.Get(ctx, id)
	if err != nil {
		return describeLookupError(err, id)
	}

	sections := sheet.Sections
	if cmd.section != "" {
		section, err := svc.GetSection(ctx, id, cmd.section)
		if err != nil {
			return describeLookupError(err, id+" / "+cmd.section)
		}
		sections = []cheatsheet.Section{*section}
	}

	doc := markdownDocument(sheet, sections)
	out := c.Root().Writer

	if cmd.raw {
		_, err := fmt.Fprint(out, doc)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(cmd.style),
		glamour.WithWordWrap(int(cmd.width)),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	rendered, err := r.Render(doc)
	if err != nil {
		return fmt.Errorf("render cheatsheet: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

func describeLookupError(err error, key string) error {
	if errors.Is(err, service.ErrNotFound) {
		return fmt.Errorf("the data for key `%s` is not available", key)
	}
	return err
}

// markdownDocument lays out a cheatsheet as a single markdown document: title,
// intro, tags, then each section under a level-2 heading.
func markdownDocument(sheet *cheatsheet.Cheatsheet, sections []cheatsheet.Section) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", sheet.Title)
	if sheet.Intro != nil && *sheet.Intro != "" {
		fmt.Fprintf(&b, "> %s\n\n", strings.ReplaceAll(strings.TrimSpace(*sheet.Intro), "\n", "\n> "))
	}
	if len(sheet.Tags) > 0 || len(sheet.Categories) > 0 {
		labels := append(append([]string{}, sheet.Categories...), sheet.Tags...)
		fmt.Fprintf(&b, "*%s*\n\n", strings.Join(labels, " · "))
	}

	for _, section := range sections {
		fmt.Fprintf(&b, "## %s\n\n", section.Title)
		content := strings.TrimRight(section.Content, "\n")
		if content != "" {
			b.WriteString(content)
			b.WriteString("\n\n")
		}
	}

	return b.String()
}
