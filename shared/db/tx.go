package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Executor is the subset of *sql.DB and *sql.Tx the store layer needs,
// letting queries run against whichever is active.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// WithTx attaches a transaction to the context so nested calls share it.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTx returns the transaction carried by the context, if any.
func GetTx(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok
}

// GetExecutor returns the context's transaction when one is active,
// falling back to the base connection otherwise.
func GetExecutor(ctx context.Context, conn *sql.DB) Executor {
	if tx, ok := GetTx(ctx); ok {
		return tx
	}
	return conn
}

// RunInTransaction executes fn inside a transaction. An existing
// transaction on the context is reused (commit and rollback stay with
// the outer owner); otherwise a new one is opened and committed when fn
// returns nil, rolled back when it returns an error.
func RunInTransaction(ctx context.Context, conn *sql.DB, fn func(ctx context.Context) error) error {
	if _, ok := GetTx(ctx); ok {
		return fn(ctx)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("failed to rollback transaction after error %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
