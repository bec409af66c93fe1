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

type PgxTaxRepository struct {
	BaseRepository
}

// newPgxTaxRepository creates a new repository for tax pointers and versions.
func newPgxTaxRepository(pool *pgxpool.Pool) portsrepo.TaxRepositoryWithTx {
	return &PgxTaxRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TaxRepositoryWithTx = (*PgxTaxRepository)(nil)

const (
	taxColumns        = `tax_id, current_version_id, created_at, created_by, last_updated_at, last_updated_by`
	taxVersionColumns = `tax_version_id, tax_id, tax_name, tax_rate, status, effective_from, effective_to, created_at, created_by, last_updated_at, last_updated_by`
)

// taxWithVersionQuery joins every pointer to the version it references.
const taxWithVersionQuery = `
	SELECT t.tax_id, t.current_version_id, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by,
	       v.tax_version_id, v.tax_id, v.tax_name, v.tax_rate, v.status, v.effective_from, v.effective_to,
	       v.created_at, v.created_by, v.last_updated_at, v.last_updated_by
	FROM taxes t
	JOIN tax_versions v ON v.tax_version_id = t.current_version_id
`

func scanTax(row pgx.Row) (models.Tax, error) {
	var t models.Tax
	err := row.Scan(&t.TaxID, &t.CurrentVersionID, &t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy)
	return t, err
}

func scanTaxVersion(row pgx.Row) (models.TaxVersion, error) {
	var v models.TaxVersion
	err := row.Scan(
		&v.TaxVersionID,
		&v.TaxID,
		&v.TaxName,
		&v.TaxRate,
		&v.Status,
		&v.EffectiveFrom,
		&v.EffectiveTo,
		&v.CreatedAt,
		&v.CreatedBy,
		&v.LastUpdatedAt,
		&v.LastUpdatedBy,
	)
	return v, err
}

func scanTaxWithVersion(row pgx.Row) (domain.Tax, error) {
	var t models.Tax
	var v models.TaxVersion
	err := row.Scan(
		&t.TaxID, &t.CurrentVersionID, &t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
		&v.TaxVersionID, &v.TaxID, &v.TaxName, &v.TaxRate, &v.Status, &v.EffectiveFrom, &v.EffectiveTo,
		&v.CreatedAt, &v.CreatedBy, &v.LastUpdatedAt, &v.LastUpdatedBy,
	)
	if err != nil {
		return domain.Tax{}, err
	}
	return mapping.ToDomainTax(t, &v), nil
}

// FindTaxByID retrieves a tax pointer together with its current version.
func (r *PgxTaxRepository) FindTaxByID(ctx context.Context, taxID string) (*domain.Tax, error) {
	tax, err := scanTaxWithVersion(r.Pool.QueryRow(ctx, taxWithVersionQuery+` WHERE t.tax_id = $1;`, taxID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("tax " + taxID)
		}
		return nil, fmt.Errorf("failed to find tax %s: %w", taxID, err)
	}
	return &tax, nil
}

// ListTaxes retrieves every tax pointer with its current version, ordered by name.
func (r *PgxTaxRepository) ListTaxes(ctx context.Context) ([]domain.Tax, error) {
	rows, err := r.Pool.Query(ctx, taxWithVersionQuery+` ORDER BY v.tax_name, t.tax_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query taxes: %w", err)
	}
	taxes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Tax, error) {
		return scanTaxWithVersion(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan taxes: %w", err)
	}
	return taxes, nil
}

// ListTaxVersions lists versions newest first. An empty taxID lists versions of every tax.
func (r *PgxTaxRepository) ListTaxVersions(ctx context.Context, taxID string, limit int) ([]domain.TaxVersion, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if taxID == "" {
		rows, err = r.Pool.Query(ctx,
			`SELECT `+taxVersionColumns+` FROM tax_versions ORDER BY created_at DESC, effective_from DESC LIMIT $1;`, limit)
	} else {
		rows, err = r.Pool.Query(ctx,
			`SELECT `+taxVersionColumns+` FROM tax_versions WHERE tax_id = $1 ORDER BY created_at DESC, effective_from DESC LIMIT $2;`, taxID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tax versions: %w", err)
	}

	versions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.TaxVersion, error) {
		return scanTaxVersion(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tax versions: %w", err)
	}
	return mapping.ToDomainTaxVersionSlice(versions), nil
}

// DeleteTax removes the tax pointer. Versions are kept as history.
func (r *PgxTaxRepository) DeleteTax(ctx context.Context, taxID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM taxes WHERE tax_id = $1;`, taxID)
	if err != nil {
		return fmt.Errorf("failed to delete tax %s: %w", taxID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("tax " + taxID)
	}
	return nil
}

// FindTaxByIDForUpdate selects a tax pointer and locks it.
// Must be called within a transaction.
func (r *PgxTaxRepository) FindTaxByIDForUpdate(ctx context.Context, tx pgx.Tx, taxID string) (*domain.Tax, error) {
	m, err := scanTax(tx.QueryRow(ctx, `SELECT `+taxColumns+` FROM taxes WHERE tax_id = $1 FOR UPDATE;`, taxID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("tax " + taxID)
		}
		return nil, fmt.Errorf("failed to lock tax %s: %w", taxID, mapPgError(err))
	}
	tax := mapping.ToDomainTax(m, nil)
	return &tax, nil
}

// FindTaxVersionByIDForUpdate selects a tax version and locks it.
// Must be called within a transaction.
func (r *PgxTaxRepository) FindTaxVersionByIDForUpdate(ctx context.Context, tx pgx.Tx, taxVersionID string) (*domain.TaxVersion, error) {
	m, err := scanTaxVersion(tx.QueryRow(ctx, `SELECT `+taxVersionColumns+` FROM tax_versions WHERE tax_version_id = $1 FOR UPDATE;`, taxVersionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("tax version " + taxVersionID)
		}
		return nil, fmt.Errorf("failed to lock tax version %s: %w", taxVersionID, mapPgError(err))
	}
	v := mapping.ToDomainTaxVersion(m)
	return &v, nil
}

// SaveTaxInTx inserts a tax pointer. The version it references may be inserted later in the same transaction.
func (r *PgxTaxRepository) SaveTaxInTx(ctx context.Context, tx pgx.Tx, tax domain.Tax) error {
	m := mapping.ToModelTax(tax)
	_, err := tx.Exec(ctx, `INSERT INTO taxes (`+taxColumns+`) VALUES ($1, $2, $3, $4, $5, $6);`,
		m.TaxID, m.CurrentVersionID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert tax %s: %w", m.TaxID, mapPgError(err))
	}
	return nil
}

// SaveTaxVersionInTx inserts a tax version.
func (r *PgxTaxRepository) SaveTaxVersionInTx(ctx context.Context, tx pgx.Tx, version domain.TaxVersion) error {
	m := mapping.ToModelTaxVersion(version)
	_, err := tx.Exec(ctx, `INSERT INTO tax_versions (`+taxVersionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		m.TaxVersionID,
		m.TaxID,
		m.TaxName,
		m.TaxRate,
		m.Status,
		m.EffectiveFrom,
		m.EffectiveTo,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tax version %s: %w", m.TaxVersionID, mapPgError(err))
	}
	return nil
}

// CloseTaxVersionInTx ends a version at closedAt and marks it inactive.
func (r *PgxTaxRepository) CloseTaxVersionInTx(ctx context.Context, tx pgx.Tx, taxVersionID string, closedAt time.Time, userID string) error {
	query := `
		UPDATE tax_versions
		SET effective_to = $2, status = 'inactive', last_updated_at = $2, last_updated_by = $3
		WHERE tax_version_id = $1;
	`
	tag, err := tx.Exec(ctx, query, taxVersionID, closedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to close tax version %s: %w", taxVersionID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("tax version " + taxVersionID)
	}
	return nil
}

// UpdateTaxPointerInTx repoints a tax at a version.
func (r *PgxTaxRepository) UpdateTaxPointerInTx(ctx context.Context, tx pgx.Tx, taxID, taxVersionID, userID string, now time.Time) error {
	query := `
		UPDATE taxes
		SET current_version_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE tax_id = $1;
	`
	tag, err := tx.Exec(ctx, query, taxID, taxVersionID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to repoint tax %s: %w", taxID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("tax " + taxID)
	}
	return nil
}
