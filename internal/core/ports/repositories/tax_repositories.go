package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TaxReader defines read operations for tax pointers and versions
type TaxReader interface {
	// FindTaxByID retrieves a tax pointer together with its current version.
	FindTaxByID(ctx context.Context, taxID string) (*domain.Tax, error)

	// ListTaxes retrieves every tax pointer with its current version.
	ListTaxes(ctx context.Context) ([]domain.Tax, error)

	// ListTaxVersions lists versions newest first. An empty taxID lists all taxes.
	ListTaxVersions(ctx context.Context, taxID string, limit int) ([]domain.TaxVersion, error)
}

// TaxWriter defines write operations outside of a ledger transaction
type TaxWriter interface {
	// DeleteTax removes the pointer; versions are kept.
	DeleteTax(ctx context.Context, taxID string) error
}

// TaxTransactionSupport defines the steps of tax creation and revision, run inside one transaction.
type TaxTransactionSupport interface {
	// FindTaxByIDForUpdate selects and locks a tax pointer.
	FindTaxByIDForUpdate(ctx context.Context, tx pgx.Tx, taxID string) (*domain.Tax, error)

	// FindTaxVersionByIDForUpdate selects and locks a tax version.
	FindTaxVersionByIDForUpdate(ctx context.Context, tx pgx.Tx, taxVersionID string) (*domain.TaxVersion, error)

	// SaveTaxInTx inserts a new tax pointer.
	SaveTaxInTx(ctx context.Context, tx pgx.Tx, tax domain.Tax) error

	// SaveTaxVersionInTx inserts a new version.
	SaveTaxVersionInTx(ctx context.Context, tx pgx.Tx, version domain.TaxVersion) error

	// CloseTaxVersionInTx ends a version at closedAt and marks it inactive.
	CloseTaxVersionInTx(ctx context.Context, tx pgx.Tx, taxVersionID string, closedAt time.Time, userID string) error

	// UpdateTaxPointerInTx repoints a tax at a version.
	UpdateTaxPointerInTx(ctx context.Context, tx pgx.Tx, taxID, taxVersionID, userID string, now time.Time) error
}

// TaxRepositoryFacade combines all tax-related repository interfaces
type TaxRepositoryFacade interface {
	TaxReader
	TaxWriter
	TaxTransactionSupport
}

// TaxRepositoryWithTx extends TaxRepositoryFacade with transaction capabilities
type TaxRepositoryWithTx interface {
	TaxRepositoryFacade
	TransactionManager
}
