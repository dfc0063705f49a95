package out

import (
	"context"
	"database/sql"
	"fmt"

	"wearlog/internal/platform/tx"
)

type txKey struct{}

// dbtx is the subset of *sql.DB and *sql.Tx the store uses, so the same
// queries run inside or outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// querier returns the transaction carried by the context, or the bare
// database handle when none is in flight.
func querier(ctx context.Context, db *sql.DB) dbtx {
	if t, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return t
	}
	return db
}

// SQLiteTxManager runs a function inside one SQLite transaction, handing the
// transaction to the stores through the context. Nested calls join the
// transaction already in flight.
type SQLiteTxManager struct {
	db *sql.DB
}

func NewSQLiteTxManager(db *sql.DB) tx.Manager {
	return &SQLiteTxManager{db: db}
}

func (m *SQLiteTxManager) Within(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}
	t, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		if rbErr := t.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := t.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
