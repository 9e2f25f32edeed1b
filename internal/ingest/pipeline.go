package ingest

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_assembler.go -package=mocks cheatsheets/internal/ingest Assembler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cheatsheets/internal/cheatsheet"
	"cheatsheets/internal/contextutil"
	apperrors "cheatsheets/internal/errors"
	"cheatsheets/internal/storage"
)

// DefaultConcurrency is the number of documents assembled at once when the
// pipeline is given no limit.
const DefaultConcurrency = 10

// Assembler builds the record for one cheatsheet id.
type Assembler interface {
	Assemble(ctx context.Context, id string) (*cheatsheet.Cheatsheet, error)
}

// Pipeline orchestrates a batch ingestion: concurrent assembly followed by
// sequential validation and storage.
type Pipeline struct {
	assembler   Assembler
	store       storage.CheatsheetStore
	runs        storage.RunStore
	concurrency int
	now         func() time.Time
}

// NewPipeline creates a new ingestion pipeline. runs may be nil, in which
// case runs are not recorded. A concurrency below one selects
// DefaultConcurrency.
func NewPipeline(
	assembler Assembler,
	store storage.CheatsheetStore,
	runs storage.RunStore,
	concurrency int,
) *Pipeline {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Pipeline{
		assembler:   assembler,
		store:       store,
		runs:        runs,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// assembled is the outcome of one assembly.
type assembled struct {
	id    string
	sheet *cheatsheet.Cheatsheet
	err   error
}

// Run assembles every id and stores the ones that succeed.
//
// At most p.concurrency documents are in flight at once, and a failing
// document never cancels its siblings. Storage is sequential and follows the
// order of ids. The returned Report is always non-nil; the error joins every
// per-document failure and is nil only when every id was stored.
func (p *Pipeline) Run(ctx context.Context, ids []string) (*Report, error) {
	runID := uuid.New().String()
	logger := contextutil.LoggerFromContext(ctx).With("run_id", runID)
	ctx = contextutil.WithLogger(ctx, logger)

	ids = dedupe(ids)
	report := &Report{
		RunID:     runID,
		StartedAt: p.now(),
		Requested: len(ids),
		Stored:    []string{},
		Failures:  []Failure{},
	}

	logger.InfoContext(ctx, "starting ingestion", "documents", len(ids), "concurrency", p.concurrency)

	results := p.assembleAll(ctx, ids)

	var (
		errs   []error
		stored []*cheatsheet.Cheatsheet
	)
	fail := func(id string, err error) {
		var docErr *apperrors.DocumentError
		if !errors.As(err, &docErr) {
			err = &apperrors.DocumentError{ID: id, Err: err}
		}
		errs = append(errs, err)
		report.Failures = append(report.Failures, Failure{ID: id, Error: err.Error()})
		logger.ErrorContext(ctx, "failed to ingest cheatsheet", "id", id, "error", err)
	}

	for _, res := range results {
		if res.err != nil {
			fail(res.id, res.err)
			continue
		}
		if err := res.sheet.Validate(); err != nil {
			fail(res.id, fmt.Errorf("invalid record: %w", err))
			continue
		}
		if err := p.store.Upsert(ctx, *res.sheet, runID); err != nil {
			fail(res.id, fmt.Errorf("failed to store cheatsheet: %w", err))
			continue
		}
		stored = append(stored, res.sheet)
		report.Stored = append(report.Stored, res.id)
	}

	report.Succeeded = len(report.Stored)
	report.Failed = len(report.Failures)
	report.Sections = computeSectionStats(stored)
	report.FinishedAt = p.now()

	if p.runs != nil {
		if err := p.runs.Record(ctx, runRecord(report)); err != nil {
			logger.ErrorContext(ctx, "failed to record ingest run", "error", err)
			errs = append(errs, fmt.Errorf("failed to record ingest run: %w", err))
		}
	}

	logger.InfoContext(ctx, "ingestion completed",
		"documents", report.Requested, "success", report.Succeeded, "errors", report.Failed,
		"duration", report.FinishedAt.Sub(report.StartedAt))

	return report, errors.Join(errs...)
}

// assembleAll runs the assembler over ids with bounded parallelism. The
// result slice is in the order of ids.
func (p *Pipeline) assembleAll(ctx context.Context, ids []string) []assembled {
	results := make([]assembled, len(ids))

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			results[i] = assembled{id: id}
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			sheet, err := p.assembler.Assemble(ctx, id)
			results[i].sheet, results[i].err = sheet, err
			if err == nil && sheet == nil {
				results[i].err = fmt.Errorf("assembler returned no record")
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func runRecord(report *Report) *storage.IngestRun {
	errs := make([]string, 0, len(report.Failures))
	for _, f := range report.Failures {
		errs = append(errs, f.Error)
	}
	return &storage.IngestRun{
		ID:         report.RunID,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Requested:  report.Requested,
		Succeeded:  report.Succeeded,
		Failed:     report.Failed,
		Errors:     errs,
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
