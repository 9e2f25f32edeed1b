package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_run_store.go -package=mocks cheatsheets/internal/storage RunStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RunStore defines the interface for ingestion run log operations.
type RunStore interface {
	// Record stores the summary of a finished run. run.ID must be set.
	Record(ctx context.Context, run *IngestRun) error
	// Latest returns the most recently started run. Returns ErrNotFound if
	// no run has been recorded.
	Latest(ctx context.Context) (*IngestRun, error)
}

// RunRepo provides methods for ingestion run operations.
// It implements the RunStore interface.
type RunRepo struct {
	db *sql.DB
}

// NewRunRepo creates a new RunRepo.
func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

// Record stores the summary of a finished run. run.ID must be set.
func (r *RunRepo) Record(ctx context.Context, run *IngestRun) error {
	if run.ID == "" {
		return fmt.Errorf("run id must be set")
	}
	errs, err := encodeJSONColumn(run.Errors)
	if err != nil {
		return fmt.Errorf("failed to encode run errors: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO ingest_runs (id, started_at, finished_at, requested, succeeded, failed, errors)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(timeLayout), run.FinishedAt.UTC().Format(timeLayout),
		run.Requested, run.Succeeded, run.Failed, errs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ingest run: %w", err)
	}
	return nil
}

// Latest returns the most recently started run.
func (r *RunRepo) Latest(ctx context.Context) (*IngestRun, error) {
	var (
		run               IngestRun
		started, finished string
		errs              sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, requested, succeeded, failed, errors
		 FROM ingest_runs ORDER BY started_at DESC LIMIT 1`,
	).Scan(&run.ID, &started, &finished, &run.Requested, &run.Succeeded, &run.Failed, &errs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ingest run: %w", err)
	}

	if run.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return nil, fmt.Errorf("failed to parse started_at timestamp: %w", err)
	}
	if run.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
		return nil, fmt.Errorf("failed to parse finished_at timestamp: %w", err)
	}
	if run.Errors, err = decodeJSONColumn[string](errs); err != nil {
		return nil, fmt.Errorf("failed to decode run errors: %w", err)
	}

	return &run, nil
}
