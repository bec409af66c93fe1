package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/pos_backoffice/internal/apperrors"
	portsrepo "github.com/SscSPs/pos_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/pos_backoffice/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// txRunner executes a unit of work inside one database transaction. The work reports
// failure by returning an error; the runner then rolls back, otherwise it commits.
// Work that fails with ErrConflict is re-run from the start up to maxRetries times.
type txRunner struct {
	tm         portsrepo.TransactionManager
	maxRetries int
}

func newTxRunner(tm portsrepo.TransactionManager, maxRetries int) txRunner {
	return txRunner{tm: tm, maxRetries: maxRetries}
}

func (r txRunner) run(ctx context.Context, op string, fn func(tx pgx.Tx) error) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	var err error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		err = r.runOnce(ctx, fn)
		if err == nil || !errors.Is(err, apperrors.ErrConflict) || ctx.Err() != nil {
			break
		}
		logger.Warn("Transaction lost a concurrent update race, retrying",
			slog.String("operation", op),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))
	}
	if err == nil || isLedgerError(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", apperrors.ErrTransaction, op, err)
}

func (r txRunner) runOnce(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.tm.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := r.tm.Rollback(ctx, tx); rbErr != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to roll back transaction", slog.String("error", rbErr.Error()))
		}
		return err
	}
	return r.tm.Commit(ctx, tx)
}

// isLedgerError reports whether err already carries one of the application's error kinds.
func isLedgerError(err error) bool {
	for _, target := range []error{
		apperrors.ErrValidation,
		apperrors.ErrNotFound,
		apperrors.ErrDuplicate,
		apperrors.ErrInsufficientConfiguration,
		apperrors.ErrInsufficientFunds,
		apperrors.ErrConflict,
		apperrors.ErrTransaction,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
