package cheatsheet

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_fetcher.go -package=mocks cheatsheets/internal/cheatsheet Fetcher
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_icon_resolver.go -package=mocks cheatsheets/internal/cheatsheet IconResolver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"cheatsheets/internal/contextutil"
	apperrors "cheatsheets/internal/errors"
	"cheatsheets/internal/markdown"
)

// Fetcher retrieves the raw markdown for a cheatsheet id.
type Fetcher interface {
	FetchDocument(ctx context.Context, id string) (string, error)
}

// IconResolver maps a cheatsheet id to an icon URL. It never fails.
type IconResolver interface {
	Resolve(ctx context.Context, id string) string
}

// Assembler turns one cheatsheet id into a Cheatsheet record.
type Assembler struct {
	fetcher  Fetcher
	icons    IconResolver
	splitter *markdown.Splitter
}

// NewAssembler creates an Assembler. It is safe for concurrent use as long as
// fetcher and icons are.
func NewAssembler(fetcher Fetcher, icons IconResolver) *Assembler {
	return &Assembler{
		fetcher:  fetcher,
		icons:    icons,
		splitter: markdown.NewSplitter(),
	}
}

// Assemble fetches, cleans, decodes and splits the document for id and
// returns the finished record. Any fetch, decode or split failure aborts the
// document and is returned as a *errors.DocumentError; no partial record is
// ever returned.
func (a *Assembler) Assemble(ctx context.Context, id string) (*Cheatsheet, error) {
	logger := contextutil.LoggerFromContext(ctx).With("id", id)

	raw, err := a.fetcher.FetchDocument(ctx, id)
	if err != nil {
		return nil, &apperrors.DocumentError{ID: id, Err: err}
	}

	cleaned := markdown.Clean(raw)

	var (
		front    markdown.Frontmatter
		sections []Section
	)
	var g errgroup.Group
	g.Go(func() error {
		fm, err := markdown.DecodeFrontmatter(cleaned)
		if err != nil {
			return fmt.Errorf("decode frontmatter: %w", err)
		}
		front = fm
		return nil
	})
	g.Go(func() error {
		s, err := a.splitter.Split(cleaned)
		if err != nil {
			return fmt.Errorf("split sections: %w", err)
		}
		sections = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, &apperrors.DocumentError{ID: id, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &apperrors.DocumentError{ID: id, Err: err}
	}

	icon := a.icons.Resolve(ctx, id)

	logger.DebugContext(ctx, "assembled cheatsheet", "title", front.Title, "sections", len(sections))

	return &Cheatsheet{
		ID:         id,
		Title:      front.Title,
		Tags:       nonNil(front.Tags),
		Categories: nonNil(front.Categories),
		Intro:      front.Intro,
		Label:      front.Label,
		Icon:       &icon,
		Background: front.Background,
		Sections:   nonNil(sections),
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
