package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/wagnerlima/agent-memory/internal/models"
)

// DefaultRunLimit is the number of runs GetRuns returns when no limit is given.
const DefaultRunLimit = 10

const runColumns = `id, directive_name, started_at, ended_at, status, error_message, notes, input_summary, output_summary`

// StartRun records the start of a directive run. The row stays in status
// "started" with no end time until EndRun is called for its id.
func (s *Store) StartRun(ctx context.Context, directive, inputSummary string) (*models.DirectiveRun, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO directive_runs (directive_name, status, input_summary)
		 VALUES (?, 'started', ?)
		 RETURNING `+runColumns,
		directive, nullString(inputSummary),
	)
	run, err := scanRun(row)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", classify(err))
	}
	return run, nil
}

// EndRun completes a started run. Runs that already ended are history and
// cannot be ended again (ErrConflict).
func (s *Store) EndRun(ctx context.Context, id int64, status string, details models.RunDetails) (*models.DirectiveRun, error) {
	if status == models.RunStarted {
		return nil, fmt.Errorf("%w: a run cannot end in status %q", ErrConstraint, status)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`UPDATE directive_runs
		 SET ended_at = `+nowExpr+`, status = ?, notes = ?, error_message = ?, output_summary = ?
		 WHERE id = ? AND ended_at IS NULL
		 RETURNING `+runColumns,
		status, nullString(details.Notes), nullString(details.ErrorMessage), nullString(details.OutputSummary), id,
	)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		var endedAt sql.NullString
		err = tx.QueryRowContext(ctx, `SELECT ended_at FROM directive_runs WHERE id = ?`, id).Scan(&endedAt)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: run %d not found", ErrNotFound, id)
		}
		if err != nil {
			return nil, fmt.Errorf("lookup run %d: %w", id, err)
		}
		return nil, fmt.Errorf("%w: run %d already ended at %s", ErrConflict, id, endedAt.String)
	}
	if err != nil {
		return nil, fmt.Errorf("update run %d: %w", id, classify(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return run, nil
}

// LogRun records a run after the fact: start and end time are both now.
func (s *Store) LogRun(ctx context.Context, directive, status string, details models.RunDetails) (*models.DirectiveRun, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO directive_runs
		 (directive_name, started_at, ended_at, status, notes, error_message, input_summary, output_summary)
		 VALUES (?, `+nowExpr+`, `+nowExpr+`, ?, ?, ?, ?, ?)
		 RETURNING `+runColumns,
		directive, status,
		nullString(details.Notes), nullString(details.ErrorMessage),
		nullString(details.InputSummary), nullString(details.OutputSummary),
	)
	run, err := scanRun(row)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", classify(err))
	}
	return run, nil
}

// GetRuns returns runs newest first, optionally filtered by exact directive
// name and status.
func (s *Store) GetRuns(ctx context.Context, filter models.RunFilter) ([]models.DirectiveRun, error) {
	var (
		where []string
		args  []any
	)
	if filter.Directive != "" {
		where = append(where, "directive_name = ?")
		args = append(args, filter.Directive)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}

	query := `SELECT ` + runColumns + ` FROM directive_runs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY started_at DESC, id DESC LIMIT ?`

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultRunLimit
	}
	args = append(args, limit)

	return queryRuns(ctx, s.db, query, args...)
}

type rowScanner interface {
	Scan(dest ...any) error
}

type rowsQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func scanRun(row rowScanner) (*models.DirectiveRun, error) {
	var r models.DirectiveRun
	var endedAt, errMsg, notes, input, output sql.NullString
	if err := row.Scan(&r.ID, &r.DirectiveName, &r.StartedAt, &endedAt, &r.Status, &errMsg, &notes, &input, &output); err != nil {
		return nil, err
	}
	r.EndedAt = stringPtr(endedAt)
	r.ErrorMessage = stringPtr(errMsg)
	r.Notes = stringPtr(notes)
	r.InputSummary = stringPtr(input)
	r.OutputSummary = stringPtr(output)
	return &r, nil
}

func queryRuns(ctx context.Context, q rowsQuerier, query string, args ...any) ([]models.DirectiveRun, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []models.DirectiveRun{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}
