package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "cheatsheets/internal/errors"
)

const docExt = ".md"

// Dir reads cheatsheet markdown from a local checkout of the posts directory.
// A document id is its path relative to Root without the .md extension.
type Dir struct {
	Root string
}

// NewDir creates a Dir rooted at root.
func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

// FetchDocument reads <Root>/<id>.md. Missing files and ids that escape the
// root wrap ErrFetch.
func (d *Dir) FetchDocument(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrFetch, err)
	}

	rel := filepath.FromSlash(id) + docExt
	if id == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: invalid document id %q", apperrors.ErrFetch, id)
	}

	data, err := os.ReadFile(filepath.Join(d.Root, rel))
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrFetch, err)
	}
	return string(data), nil
}

// Scan walks Root and returns the id of every markdown document, sorted.
// Hidden directories are skipped.
func (d *Dir) Scan(ctx context.Context) ([]string, error) {
	var ids []string

	err := filepath.WalkDir(d.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if entry.IsDir() {
			if path != d.Root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != docExt {
			return nil
		}

		relPath, err := filepath.Rel(d.Root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		ids = append(ids, strings.TrimSuffix(filepath.ToSlash(relPath), docExt))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", d.Root, err)
	}

	sort.Strings(ids)
	return ids, nil
}
