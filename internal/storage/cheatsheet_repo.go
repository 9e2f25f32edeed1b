package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_cheatsheet_store.go -package=mocks cheatsheets/internal/storage CheatsheetStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cheatsheets/internal/cheatsheet"
	apperrors "cheatsheets/internal/errors"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = fmt.Errorf("record %w", apperrors.ErrNotFound)
)

// CheatsheetStore defines the interface for cheatsheet storage operations.
type CheatsheetStore interface {
	// Upsert inserts a cheatsheet or replaces the stored one with the same id.
	Upsert(ctx context.Context, c cheatsheet.Cheatsheet, runID string) error
	// GetByID gets a cheatsheet by id. Returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*cheatsheet.Cheatsheet, error)
	// ListMeta returns the metadata of every stored cheatsheet, ordered by id.
	ListMeta(ctx context.Context) ([]cheatsheet.Meta, error)
}

// CheatsheetRepo provides methods for cheatsheet operations.
// It implements the CheatsheetStore interface.
type CheatsheetRepo struct {
	db *sql.DB
}

// NewCheatsheetRepo creates a new CheatsheetRepo.
func NewCheatsheetRepo(db *sql.DB) *CheatsheetRepo {
	return &CheatsheetRepo{db: db}
}

// DB returns the underlying database handle.
func (r *CheatsheetRepo) DB() *sql.DB {
	return r.db
}

// Upsert inserts a cheatsheet or replaces the stored one with the same id.
// List and section columns are stored as JSON text.
func (r *CheatsheetRepo) Upsert(ctx context.Context, c cheatsheet.Cheatsheet, runID string) error {
	tags, err := encodeJSONColumn(c.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	categories, err := encodeJSONColumn(c.Categories)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}
	sections, err := encodeJSONColumn(c.Sections)
	if err != nil {
		return fmt.Errorf("failed to encode sections: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO cheatsheets (id, title, tags, categories, intro, label, icon, background, sections, run_id, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 title = excluded.title, tags = excluded.tags, categories = excluded.categories,
		 intro = excluded.intro, label = excluded.label, icon = excluded.icon,
		 background = excluded.background, sections = excluded.sections,
		 run_id = excluded.run_id, updated_at = excluded.updated_at`,
		c.ID, c.Title, tags, categories, c.Intro, c.Label, c.Icon, c.Background, sections,
		nullString(runID), time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cheatsheet: %w", err)
	}
	return nil
}

// GetByID gets a cheatsheet by id. Returns nil and ErrNotFound if not found.
func (r *CheatsheetRepo) GetByID(ctx context.Context, id string) (*cheatsheet.Cheatsheet, error) {
	var (
		c                          cheatsheet.Cheatsheet
		tags, categories, sections sql.NullString
		intro, label, icon, bg     sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, tags, categories, intro, label, icon, background, sections
		 FROM cheatsheets WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.Title, &tags, &categories, &intro, &label, &icon, &bg, &sections)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cheatsheet: %w", err)
	}

	if c.Tags, err = decodeJSONColumn[string](tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags of %q: %w", id, err)
	}
	if c.Categories, err = decodeJSONColumn[string](categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories of %q: %w", id, err)
	}
	if c.Sections, err = decodeJSONColumn[cheatsheet.Section](sections); err != nil {
		return nil, fmt.Errorf("failed to decode sections of %q: %w", id, err)
	}
	c.Intro, c.Label, c.Icon, c.Background = stringPtr(intro), stringPtr(label), stringPtr(icon), stringPtr(bg)

	return &c, nil
}

// ListMeta returns the metadata of every stored cheatsheet, ordered by id.
// Returns an empty slice if the table is empty (not an error).
func (r *CheatsheetRepo) ListMeta(ctx context.Context) ([]cheatsheet.Meta, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, tags, categories, intro, label, icon, background
		 FROM cheatsheets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cheatsheets: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	metas := []cheatsheet.Meta{}
	for rows.Next() {
		var (
			m                      cheatsheet.Meta
			tags, categories       sql.NullString
			intro, label, icon, bg sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Title, &tags, &categories, &intro, &label, &icon, &bg); err != nil {
			return nil, fmt.Errorf("failed to scan cheatsheet: %w", err)
		}
		if m.Tags, err = decodeJSONColumn[string](tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags of %q: %w", m.ID, err)
		}
		if m.Categories, err = decodeJSONColumn[string](categories); err != nil {
			return nil, fmt.Errorf("failed to decode categories of %q: %w", m.ID, err)
		}
		m.Intro, m.Label, m.Icon, m.Background = stringPtr(intro), stringPtr(label), stringPtr(icon), stringPtr(bg)
		metas = append(metas, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return metas, nil
}

func encodeJSONColumn[T any](values []T) (string, error) {
	if values == nil {
		values = []T{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decodeJSONColumn reads a JSON list column. NULL and empty text decode as an
// empty list, and a JSON string holding an encoded list is unwrapped once.
func decodeJSONColumn[T any](col sql.NullString) ([]T, error) {
	values := []T{}
	if !col.Valid || col.String == "" {
		return values, nil
	}

	raw := []byte(col.String)
	var nested string
	if err := json.Unmarshal(raw, &nested); err == nil {
		if nested == "" {
			return values, nil
		}
		raw = []byte(nested)
	}

	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = []T{}
	}
	return values, nil
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
