package query

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tazeverywhere/dataquery/pkg/connection"
	"github.com/tazeverywhere/dataquery/pkg/dsl"
)

// ExecutionError reports a statement rejected by the database during a dry run.
type ExecutionError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the driver error.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// DriverMessage returns the error text reported by the database driver.
func (e *ExecutionError) DriverMessage() string {
	return e.Err.Error()
}

// Executor dry-runs rendered SQL against DuckDB. Every statement runs inside a
// transaction that is rolled back, so neither reads nor writes persist.
type Executor struct {
	mgr             *connection.Manager
	mapper          *TypeMapper
	dryRunMutations bool
}

// Option configures an Executor.
type Option func(*Executor)

// WithMutations controls whether INSERT, UPDATE and DELETE statements are dry-run.
// When disabled they are reported as skipped without touching the database.
func WithMutations(enabled bool) Option {
	return func(e *Executor) {
		e.dryRunMutations = enabled
	}
}

// NewExecutor creates a new dry-run executor.
func NewExecutor(mgr *connection.Manager, opts ...Option) *Executor {
	e := &Executor{
		mgr:             mgr,
		mapper:          NewTypeMapper(),
		dryRunMutations: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute dry-runs sql. Row-returning statements are read to completion, which is
// cheap because callers cap their cardinality first; other statements are executed
// for their affected row count. Database errors are returned as *ExecutionError.
func (e *Executor) Execute(ctx context.Context, sqlText string) (*Result, error) {
	kind := dsl.Classify(sqlText)
	if kind.IsMutation() && !e.dryRunMutations {
		return &Result{Skipped: true}, nil
	}

	var result *Result
	err := e.mgr.DryRunTx(ctx, func(tx *sql.Tx) error {
		var err error
		if kind.IsQuery() {
			result, err = e.query(ctx, tx, sqlText)
		} else {
			result, err = e.exec(ctx, tx, sqlText)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Executor) query(ctx context.Context, tx *sql.Tx, sqlText string) (*Result, error) {
	rows, err := tx.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, &ExecutionError{Stage: "query execution error", Err: err}
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &ExecutionError{Stage: "failed to get columns", Err: err}
	}
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		columnTypes = nil
	}

	var n int64
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, &ExecutionError{Stage: "error iterating rows", Err: err}
	}

	return &Result{
		Columns:      e.mapper.InferColumns(columns, columnTypes),
		RowsReturned: n,
	}, nil
}

func (e *Executor) exec(ctx context.Context, tx *sql.Tx, sqlText string) (*Result, error) {
	res, err := tx.ExecContext(ctx, sqlText)
	if err != nil {
		return nil, &ExecutionError{Stage: "execution error", Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, &ExecutionError{Stage: "failed to get rows affected", Err: err}
	}
	return &Result{RowsAffected: affected}, nil
}
