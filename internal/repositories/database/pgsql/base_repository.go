package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/pos_backoffice/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes the ledger reacts to.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// openRatePerPairIndex guarantees a single open active rate per currency pair.
const openRatePerPairIndex = "ux_exchange_rate_history_open_pair"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", mapPgError(err))
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// mapPgError translates PostgreSQL failures into application sentinels, keeping the cause in the chain.
// Lost lock races map to ErrConflict so the caller can retry the whole unit of work.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, err)
	case pgUniqueViolation:
		if pgErr.ConstraintName == openRatePerPairIndex {
			return fmt.Errorf("%w: %w", apperrors.ErrConflict, err)
		}
		return fmt.Errorf("%w: %w", apperrors.ErrDuplicate, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: referenced record does not exist (%s): %w", apperrors.ErrValidation, pgErr.ConstraintName, err)
	case pgCheckViolation:
		return fmt.Errorf("%w: constraint %s violated: %w", apperrors.ErrValidation, pgErr.ConstraintName, err)
	}
	return err
}
