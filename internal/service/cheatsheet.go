package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_cheatsheet_service.go -package=mocks -mock_names=CheatsheetService=MockCheatsheetService cheatsheets/internal/service CheatsheetService

import (
	"context"
	"errors"
	"strings"

	"cheatsheets/internal/cheatsheet"
	"cheatsheets/internal/contextutil"
	"cheatsheets/internal/storage"
)

// CheatsheetService provides read access to stored cheatsheets.
type CheatsheetService interface {
	// List returns the metadata of every stored cheatsheet.
	List(ctx context.Context) ([]cheatsheet.Meta, error)
	// Get returns one cheatsheet by id.
	Get(ctx context.Context, id string) (*cheatsheet.Cheatsheet, error)
	// GetSection returns the first section of a cheatsheet whose title
	// matches title, ignoring case.
	GetSection(ctx context.Context, id, title string) (*cheatsheet.Section, error)
	// LatestRun returns the summary of the most recent ingestion run.
	LatestRun(ctx context.Context) (*storage.IngestRun, error)
}

// cheatsheetService implements CheatsheetService.
type cheatsheetService struct {
	store storage.CheatsheetStore
	runs  storage.RunStore
}

// NewCheatsheetService creates a new CheatsheetService.
func NewCheatsheetService(store storage.CheatsheetStore, runs storage.RunStore) CheatsheetService {
	return &cheatsheetService{
		store: store,
		runs:  runs,
	}
}

// List returns the metadata of every stored cheatsheet.
func (s *cheatsheetService) List(ctx context.Context) ([]cheatsheet.Meta, error) {
	metas, err := s.store.ListMeta(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list cheatsheets", "error", err)
		return nil, WrapError(errors.Join(ErrStorage, err), "failed to list cheatsheets")
	}
	if metas == nil {
		metas = []cheatsheet.Meta{}
	}
	return metas, nil
}

// Get returns one cheatsheet by id.
func (s *cheatsheetService) Get(ctx context.Context, id string) (*cheatsheet.Cheatsheet, error) {
	logger := contextutil.LoggerFromContext(ctx)

	id = strings.TrimSpace(id)
	if id == "" {
		logger.WarnContext(ctx, "empty cheatsheet id")
		return nil, &ValidationError{
			Field:   "id",
			Message: "cannot be empty",
		}
	}

	sheet, err := s.store.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to get cheatsheet", "id", id, "error", err)
		return nil, WrapError(errors.Join(ErrStorage, err), "failed to get cheatsheet")
	}
	return sheet, nil
}

// GetSection returns the first section of a cheatsheet whose title matches
// title, ignoring case and surrounding whitespace.
func (s *cheatsheetService) GetSection(ctx context.Context, id, title string) (*cheatsheet.Section, error) {
	sheet, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	want := strings.TrimSpace(title)
	for i := range sheet.Sections {
		if strings.EqualFold(strings.TrimSpace(sheet.Sections[i].Title), want) {
			section := sheet.Sections[i]
			return &section, nil
		}
	}
	return nil, ErrNotFound
}

// LatestRun returns the summary of the most recent ingestion run.
func (s *cheatsheetService) LatestRun(ctx context.Context) (*storage.IngestRun, error) {
	if s.runs == nil {
		return nil, ErrNotFound
	}
	run, err := s.runs.Latest(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to get latest run", "error", err)
		return nil, WrapError(errors.Join(ErrStorage, err), "failed to get latest run")
	}
	return run, nil
}
