package ingest

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"cheatsheets/internal/cheatsheet"
	apperrors "cheatsheets/internal/errors"
	"cheatsheets/internal/ingest/mocks"
	"cheatsheets/internal/storage"
	storage_mocks "cheatsheets/internal/storage/mocks"
)

func record(id string) *cheatsheet.Cheatsheet {
	return &cheatsheet.Cheatsheet{
		ID:         id,
		Title:      "Title " + id,
		Tags:       []string{},
		Categories: []string{},
		Sections:   []cheatsheet.Section{{Title: "Basics", Content: "x\n"}},
	}
}

func TestNewPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pipeline := NewPipeline(mocks.NewMockAssembler(ctrl), storage_mocks.NewMockCheatsheetStore(ctrl), nil, 0)
	if pipeline == nil {
		t.Fatal("NewPipeline() returned nil")
	}
	if pipeline.concurrency != DefaultConcurrency {
		t.Errorf("NewPipeline() concurrency = %v, want %v", pipeline.concurrency, DefaultConcurrency)
	}

	pipeline = NewPipeline(mocks.NewMockAssembler(ctrl), storage_mocks.NewMockCheatsheetStore(ctrl), nil, 3)
	if pipeline.concurrency != 3 {
		t.Errorf("NewPipeline() concurrency = %v, want 3", pipeline.concurrency)
	}
}

func TestPipeline_Run_AllSucceed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assembler := mocks.NewMockAssembler(ctrl)
	store := storage_mocks.NewMockCheatsheetStore(ctrl)
	runs := storage_mocks.NewMockRunStore(ctrl)

	assembler.EXPECT().Assemble(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id string) (*cheatsheet.Cheatsheet, error) {
			return record(id), nil
		}).Times(3)

	var storedOrder []string
	store.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c cheatsheet.Cheatsheet, runID string) error {
			if runID == "" {
				t.Error("Upsert() called without run id")
			}
			storedOrder = append(storedOrder, c.ID)
			return nil
		}).Times(3)

	var recorded *storage.IngestRun
	runs.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, run *storage.IngestRun) error {
			recorded = run
			return nil
		})

	report, err := NewPipeline(assembler, store, runs, 2).Run(context.Background(), []string{"c", "a", "b", "a"})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if report.Requested != 3 || report.Succeeded != 3 || report.Failed != 0 {
		t.Errorf("Run() report counts = %d/%d/%d, want 3/3/0", report.Requested, report.Succeeded, report.Failed)
	}
	want := []string{"c", "a", "b"}
	for i := range want {
		if storedOrder[i] != want[i] || report.Stored[i] != want[i] {
			t.Errorf("Run() stored order = %v / %v, want %v", storedOrder, report.Stored, want)
			break
		}
	}
	if report.Sections.Total != 3 {
		t.Errorf("Run() section total = %d, want 3", report.Sections.Total)
	}
	if recorded == nil || recorded.ID != report.RunID || recorded.Succeeded != 3 {
		t.Errorf("Run() recorded run = %+v, want summary of %s", recorded, report.RunID)
	}
}

func TestPipeline_Run_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assembler := mocks.NewMockAssembler(ctrl)
	store := storage_mocks.NewMockCheatsheetStore(ctrl)

	invalid := record("invalid")
	invalid.Title = ""

	assembler.EXPECT().Assemble(gomock.Any(), "ok").Return(record("ok"), nil)
	assembler.EXPECT().Assemble(gomock.Any(), "broken").
		Return(nil, &apperrors.DocumentError{ID: "broken", Err: apperrors.ErrFetch})
	assembler.EXPECT().Assemble(gomock.Any(), "invalid").Return(invalid, nil)
	assembler.EXPECT().Assemble(gomock.Any(), "unstored").Return(record("unstored"), nil)

	store.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c cheatsheet.Cheatsheet, _ string) error {
			if c.ID == "unstored" {
				return errors.New("disk full")
			}
			return nil
		}).Times(2)

	report, err := NewPipeline(assembler, store, nil, 4).
		Run(context.Background(), []string{"ok", "broken", "invalid", "unstored"})
	if err == nil {
		t.Fatal("Run() expected error, got nil")
	}
	if !errors.Is(err, apperrors.ErrFetch) {
		t.Errorf("Run() error = %v, want to wrap ErrFetch", err)
	}

	if report.Succeeded != 1 || report.Failed != 3 {
		t.Errorf("Run() report = %d succeeded / %d failed, want 1/3", report.Succeeded, report.Failed)
	}
	if len(report.Stored) != 1 || report.Stored[0] != "ok" {
		t.Errorf("Run() stored = %v, want [ok]", report.Stored)
	}
	failed := map[string]bool{}
	for _, f := range report.Failures {
		failed[f.ID] = true
	}
	for _, id := range []string{"broken", "invalid", "unstored"} {
		if !failed[id] {
			t.Errorf("Run() failures missing %q: %+v", id, report.Failures)
		}
	}

	var docErr *apperrors.DocumentError
	if !errors.As(err, &docErr) {
		t.Errorf("Run() error = %v, want DocumentError entries", err)
	}
}

func TestPipeline_Run_RecordFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assembler := mocks.NewMockAssembler(ctrl)
	store := storage_mocks.NewMockCheatsheetStore(ctrl)
	runs := storage_mocks.NewMockRunStore(ctrl)

	runs.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("locked"))

	report, err := NewPipeline(assembler, store, runs, 1).Run(context.Background(), nil)
	if err == nil {
		t.Fatal("Run() expected error from run log, got nil")
	}
	if report == nil || report.Requested != 0 {
		t.Errorf("Run() report = %+v, want empty run", report)
	}
}

func TestPipeline_Run_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assembler := mocks.NewMockAssembler(ctrl)
	store := storage_mocks.NewMockCheatsheetStore(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewPipeline(assembler, store, nil, 2).Run(ctx, []string{"a", "b"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if report.Failed != 2 {
		t.Errorf("Run() failed = %d, want 2", report.Failed)
	}
}

// countingAssembler tracks how many assemblies are in flight.
type countingAssembler struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
}

func (a *countingAssembler) Assemble(ctx context.Context, id string) (*cheatsheet.Cheatsheet, error) {
	a.calls.Add(1)
	n := a.inFlight.Add(1)
	defer a.inFlight.Add(-1)
	for {
		peak := a.peak.Load()
		if n <= peak || a.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	if id == "fail" {
		return nil, &apperrors.DocumentError{ID: id, Err: apperrors.ErrFetch}
	}
	return record(id), nil
}

// memoryStore is a CheatsheetStore kept in a map.
type memoryStore struct {
	mu     sync.Mutex
	sheets map[string]cheatsheet.Cheatsheet
}

func (s *memoryStore) Upsert(_ context.Context, c cheatsheet.Cheatsheet, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[c.ID] = c
	return nil
}

func (s *memoryStore) GetByID(_ context.Context, id string) (*cheatsheet.Cheatsheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.sheets[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &c, nil
}

func (s *memoryStore) ListMeta(context.Context) ([]cheatsheet.Meta, error) {
	return nil, nil
}

func TestPipeline_Run_BoundedConcurrency(t *testing.T) {
	assembler := &countingAssembler{}
	store := &memoryStore{sheets: map[string]cheatsheet.Cheatsheet{}}

	ids := []string{"fail"}
	for i := range 30 {
		ids = append(ids, string(rune('a'+i%26))+string(rune('0'+i/26)))
	}

	report, err := NewPipeline(assembler, store, nil, 4).Run(context.Background(), ids)
	if err == nil {
		t.Fatal("Run() expected error for failing document")
	}

	if got := assembler.calls.Load(); got != int32(len(ids)) {
		t.Errorf("Assemble() calls = %d, want %d (a failure must not cancel siblings)", got, len(ids))
	}
	if peak := assembler.peak.Load(); peak > 4 {
		t.Errorf("peak concurrency = %d, want <= 4", peak)
	}
	if report.Succeeded != 30 || len(store.sheets) != 30 {
		t.Errorf("Run() succeeded = %d, stored = %d, want 30", report.Succeeded, len(store.sheets))
	}
}

func TestPipeline_Run_SQLiteStore(t *testing.T) {
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}

	store := storage.NewCheatsheetRepo(db)
	runs := storage.NewRunRepo(db)

	report, err := NewPipeline(&countingAssembler{}, store, runs, 2).
		Run(context.Background(), []string{"git", "vim"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	metas, err := store.ListMeta(context.Background())
	if err != nil {
		t.Fatalf("ListMeta() error = %v", err)
	}
	if len(metas) != 2 {
		t.Errorf("ListMeta() = %d records, want 2", len(metas))
	}

	latest, err := runs.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest.ID != report.RunID || latest.Succeeded != 2 {
		t.Errorf("Latest() = %+v, want run %s with 2 successes", latest, report.RunID)
	}
}
