package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/pos_backoffice/internal/apperrors"
	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/pos_backoffice/internal/models"
	"github.com/SscSPs/pos_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxCapitalRepository struct {
	BaseRepository
}

// newPgxCapitalRepository creates a new repository for capital balances.
func newPgxCapitalRepository(pool *pgxpool.Pool) portsrepo.CapitalRepositoryWithTx {
	return &PgxCapitalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CapitalRepositoryWithTx = (*PgxCapitalRepository)(nil)

const capitalColumns = `capital_id, currency_code, initial_amount, remaining_amount, created_at, created_by, last_updated_at, last_updated_by`

func scanCapital(row pgx.Row) (models.Capital, error) {
	var c models.Capital
	err := row.Scan(
		&c.CapitalID,
		&c.CurrencyCode,
		&c.InitialAmount,
		&c.RemainingAmount,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

func (r *PgxCapitalRepository) findCapital(ctx context.Context, q querier, query, currencyCode string) (*domain.Capital, error) {
	m, err := scanCapital(q.QueryRow(ctx, query, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("capital for currency " + currencyCode)
		}
		return nil, fmt.Errorf("failed to find capital for %s: %w", currencyCode, mapPgError(err))
	}
	c := mapping.ToDomainCapital(m)
	return &c, nil
}

// FindCapitalByCurrency retrieves the capital row of a currency.
func (r *PgxCapitalRepository) FindCapitalByCurrency(ctx context.Context, currencyCode string) (*domain.Capital, error) {
	return r.findCapital(ctx, r.Pool, `SELECT `+capitalColumns+` FROM capitals WHERE currency_code = $1;`, currencyCode)
}

// FindCapitalByCurrencyForUpdate selects the capital row of a currency and locks it.
// Must be called within a transaction.
func (r *PgxCapitalRepository) FindCapitalByCurrencyForUpdate(ctx context.Context, tx pgx.Tx, currencyCode string) (*domain.Capital, error) {
	return r.findCapital(ctx, tx, `SELECT `+capitalColumns+` FROM capitals WHERE currency_code = $1 FOR UPDATE;`, currencyCode)
}

// ListCapitals retrieves every capital row ordered by currency.
func (r *PgxCapitalRepository) ListCapitals(ctx context.Context) ([]domain.Capital, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+capitalColumns+` FROM capitals ORDER BY currency_code;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query capitals: %w", err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Capital, error) {
		return scanCapital(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan capitals: %w", err)
	}
	capitals := make([]domain.Capital, len(ms))
	for i, m := range ms {
		capitals[i] = mapping.ToDomainCapital(m)
	}
	return capitals, nil
}

// SumPostedAmounts totals the expense lines charged against a currency.
func (r *PgxCapitalRepository) SumPostedAmounts(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expense_currencies WHERE currency_code = $1;`, currencyCode,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum posted amounts for %s: %w", currencyCode, err)
	}
	return total, nil
}

// SaveCapital inserts a capital row. A second row for the same currency is ErrDuplicate.
func (r *PgxCapitalRepository) SaveCapital(ctx context.Context, capital domain.Capital) error {
	m := mapping.ToModelCapital(capital)
	_, err := r.Pool.Exec(ctx, `INSERT INTO capitals (`+capitalColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		m.CapitalID,
		m.CurrencyCode,
		m.InitialAmount,
		m.RemainingAmount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save capital for %s: %w", m.CurrencyCode, mapPgError(err))
	}
	return nil
}

// DeleteCapital removes the capital row of a currency.
func (r *PgxCapitalRepository) DeleteCapital(ctx context.Context, currencyCode string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM capitals WHERE currency_code = $1;`, currencyCode)
	if err != nil {
		return fmt.Errorf("failed to delete capital for %s: %w", currencyCode, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("capital for currency " + currencyCode)
	}
	return nil
}

// UpdateCapitalInTx writes the initial and remaining amounts of a row locked by FindCapitalByCurrencyForUpdate.
func (r *PgxCapitalRepository) UpdateCapitalInTx(ctx context.Context, tx pgx.Tx, capital domain.Capital) error {
	query := `
		UPDATE capitals
		SET initial_amount = $2, remaining_amount = $3, last_updated_at = $4, last_updated_by = $5
		WHERE capital_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		capital.CapitalID,
		capital.InitialAmount,
		capital.RemainingAmount,
		capital.LastUpdatedAt,
		capital.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update capital for %s: %w", capital.CurrencyCode, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("capital for currency " + capital.CurrencyCode)
	}
	return nil
}
