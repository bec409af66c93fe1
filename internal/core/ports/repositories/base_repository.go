package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager opens and finishes the pgx transactions that ledger mutations run in.
// Services drive it through txRunner, which begins a transaction, retries the
// whole unit on ErrConflict and commits or rolls back.
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}
