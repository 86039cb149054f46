// Package query executes rendered SQL against DuckDB as a dry run.
package query

import (
	"context"
)

// SQLExecutor defines the interface for dry-run SQL execution.
type SQLExecutor interface {
	// Execute runs sql without leaving side effects on stored data.
	Execute(ctx context.Context, sql string) (*Result, error)
}

var _ SQLExecutor = (*Executor)(nil)
