// Package connection manages the database handle used for dry-run executions.
package connection

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// Manager manages DuckDB connections with proper locking.
//
// The Manager ensures thread-safe access to the DuckDB database:
//   - Query operations can be concurrent (reads)
//   - Exec operations are serialized using a mutex (writes)
//   - Transactions, including dry-run transactions, are also serialized
type Manager struct {
	db      *sql.DB
	writeMu sync.Mutex
}

// NewManager creates a new connection manager for the given database.
func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db}
}

// Query executes a read query (can be concurrent).
func (m *Manager) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return m.db.QueryContext(ctx, query, args...)
}

// QueryRow executes a query that is expected to return at most one row.
func (m *Manager) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return m.db.QueryRowContext(ctx, query, args...)
}

// Exec executes a write operation (serialized).
func (m *Manager) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return m.db.ExecContext(ctx, query, args...)
}

// ExecTx executes multiple statements in a transaction.
// If the provided function returns an error, the transaction is rolled back.
func (m *Manager) ExecTx(ctx context.Context, fn func(*sql.Tx) error) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// DryRunTx runs fn inside a transaction that is always rolled back, so statements
// executed through the transaction never change stored data.
func (m *Manager) DryRunTx(ctx context.Context, fn func(*sql.Tx) error) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin dry-run transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	return fn(tx)
}
