package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/pos_backoffice/internal/apperrors"
	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/pos_backoffice/internal/models"
	"github.com/SscSPs/pos_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for the rate history ledger.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryWithTx {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryWithTx = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `exchange_rate_id, base_currency, quote_currency, rate, status, effective_from, effective_to, created_at, created_by, last_updated_at, last_updated_by`

func scanExchangeRate(row pgx.Row) (models.ExchangeRateHistory, error) {
	var m models.ExchangeRateHistory
	err := row.Scan(
		&m.ExchangeRateID,
		&m.BaseCurrency,
		&m.QuoteCurrency,
		&m.Rate,
		&m.Status,
		&m.EffectiveFrom,
		&m.EffectiveTo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectExchangeRates(rows pgx.Rows) ([]domain.ExchangeRateRecord, error) {
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRateHistory, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainExchangeRateSlice(ms), nil
}

// FindExchangeRateByID retrieves one history record.
func (r *PgxExchangeRateRepository) FindExchangeRateByID(ctx context.Context, exchangeRateID string) (*domain.ExchangeRateRecord, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rate_history WHERE exchange_rate_id = $1;`

	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, exchangeRateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exchange rate " + exchangeRateID)
		}
		return nil, fmt.Errorf("failed to find exchange rate %s: %w", exchangeRateID, err)
	}
	d := mapping.ToDomainExchangeRate(m)
	return &d, nil
}

// FindCurrentExchangeRate resolves the pair's pointer to the record it references.
func (r *PgxExchangeRateRepository) FindCurrentExchangeRate(ctx context.Context, pair domain.CurrencyPair) (*domain.ExchangeRateRecord, error) {
	query := `
		SELECT h.exchange_rate_id, h.base_currency, h.quote_currency, h.rate, h.status, h.effective_from, h.effective_to,
		       h.created_at, h.created_by, h.last_updated_at, h.last_updated_by
		FROM current_exchange_rate_pointers p
		JOIN exchange_rate_history h ON h.exchange_rate_id = p.exchange_rate_id
		WHERE p.base_currency = $1 AND p.quote_currency = $2;
	`
	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, pair.Base, pair.Quote))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("current exchange rate for " + pair.String())
		}
		return nil, fmt.Errorf("failed to find current exchange rate for %s: %w", pair, err)
	}
	d := mapping.ToDomainExchangeRate(m)
	return &d, nil
}

// ListExchangeRateHistory lists records newest first, optionally narrowed to one base and/or quote currency.
func (r *PgxExchangeRateRepository) ListExchangeRateHistory(ctx context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRateRecord, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rate_history
		WHERE ($1::text = '' OR base_currency = $1::text)
		  AND ($2::text = '' OR quote_currency = $2::text)
		ORDER BY created_at DESC, effective_from DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, filter.BaseCurrency, filter.QuoteCurrency, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rate history: %w", err)
	}
	records, err := collectExchangeRates(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rate history: %w", err)
	}
	return records, nil
}

// DeleteExchangeRate removes a history record. The pair's pointer cascades if it referenced the record.
func (r *PgxExchangeRateRepository) DeleteExchangeRate(ctx context.Context, exchangeRateID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM exchange_rate_history WHERE exchange_rate_id = $1;`, exchangeRateID)
	if err != nil {
		return fmt.Errorf("failed to delete exchange rate %s: %w", exchangeRateID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("exchange rate " + exchangeRateID)
	}
	return nil
}

// LockCurrencyPair takes a transaction-scoped advisory lock on the pair, so concurrent
// submissions for the same pair run one after the other even when no active row exists yet.
func (r *PgxExchangeRateRepository) LockCurrencyPair(ctx context.Context, tx pgx.Tx, pair domain.CurrencyPair) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, pair.LockKey()); err != nil {
		return fmt.Errorf("failed to lock currency pair %s: %w", pair, mapPgError(err))
	}
	return nil
}

// FindActiveExchangeRatesForUpdate selects the pair's active records and locks them.
// Must be called within a transaction.
func (r *PgxExchangeRateRepository) FindActiveExchangeRatesForUpdate(ctx context.Context, tx pgx.Tx, pair domain.CurrencyPair) ([]domain.ExchangeRateRecord, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rate_history
		WHERE base_currency = $1 AND quote_currency = $2 AND status = 'active'
		ORDER BY effective_from DESC
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, pair.Base, pair.Quote)
	if err != nil {
		return nil, fmt.Errorf("failed to lock active exchange rates for %s: %w", pair, mapPgError(err))
	}
	records, err := collectExchangeRates(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan active exchange rates for %s: %w", pair, mapPgError(err))
	}
	return records, nil
}

// CloseActiveExchangeRatesInTx ends every active record of the pair at closedAt.
func (r *PgxExchangeRateRepository) CloseActiveExchangeRatesInTx(ctx context.Context, tx pgx.Tx, pair domain.CurrencyPair, closedAt time.Time, userID string, now time.Time) (int64, error) {
	query := `
		UPDATE exchange_rate_history
		SET status = 'inactive', effective_to = $3, last_updated_at = $4, last_updated_by = $5
		WHERE base_currency = $1 AND quote_currency = $2 AND status = 'active';
	`
	tag, err := tx.Exec(ctx, query, pair.Base, pair.Quote, closedAt, now, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to close active exchange rates for %s: %w", pair, mapPgError(err))
	}
	return tag.RowsAffected(), nil
}

// SaveExchangeRateInTx inserts a new history record.
func (r *PgxExchangeRateRepository) SaveExchangeRateInTx(ctx context.Context, tx pgx.Tx, record domain.ExchangeRateRecord) error {
	m := mapping.ToModelExchangeRate(record)
	query := `
		INSERT INTO exchange_rate_history (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.ExchangeRateID,
		m.BaseCurrency,
		m.QuoteCurrency,
		m.Rate,
		m.Status,
		m.EffectiveFrom,
		m.EffectiveTo,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert exchange rate %s: %w", m.ExchangeRateID, mapPgError(err))
	}
	return nil
}

// UpsertCurrentRatePointerInTx points the pair at a record, creating the pointer on first use.
func (r *PgxExchangeRateRepository) UpsertCurrentRatePointerInTx(ctx context.Context, tx pgx.Tx, pointer domain.CurrentRatePointer) error {
	query := `
		INSERT INTO current_exchange_rate_pointers (base_currency, quote_currency, exchange_rate_id, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (base_currency, quote_currency) DO UPDATE SET
			exchange_rate_id = EXCLUDED.exchange_rate_id,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by;
	`
	_, err := tx.Exec(ctx, query,
		pointer.BaseCurrency,
		pointer.QuoteCurrency,
		pointer.ExchangeRateID,
		pointer.UpdatedAt,
		pointer.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update current rate pointer for %s/%s: %w", pointer.BaseCurrency, pointer.QuoteCurrency, mapPgError(err))
	}
	return nil
}
