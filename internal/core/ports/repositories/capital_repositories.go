package repositories

import (
	"context"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CapitalReader defines read operations for capital balances
type CapitalReader interface {
	// FindCapitalByCurrency retrieves the capital row of a currency.
	FindCapitalByCurrency(ctx context.Context, currencyCode string) (*domain.Capital, error)

	// ListCapitals retrieves every capital row.
	ListCapitals(ctx context.Context) ([]domain.Capital, error)

	// SumPostedAmounts totals the expense lines charged against a currency.
	SumPostedAmounts(ctx context.Context, currencyCode string) (decimal.Decimal, error)
}

// CapitalWriter defines write operations outside of a ledger transaction
type CapitalWriter interface {
	// SaveCapital inserts a capital row. A second row for the same currency is ErrDuplicate.
	SaveCapital(ctx context.Context, capital domain.Capital) error

	// DeleteCapital removes the capital row of a currency.
	DeleteCapital(ctx context.Context, currencyCode string) error
}

// CapitalTransactionSupport defines operations that support expense posting
type CapitalTransactionSupport interface {
	// FindCapitalByCurrencyForUpdate selects and locks the capital row of a currency.
	FindCapitalByCurrencyForUpdate(ctx context.Context, tx pgx.Tx, currencyCode string) (*domain.Capital, error)

	// UpdateCapitalInTx writes the initial and remaining amounts of a locked row.
	UpdateCapitalInTx(ctx context.Context, tx pgx.Tx, capital domain.Capital) error
}

// CapitalRepositoryFacade combines all capital-related repository interfaces
type CapitalRepositoryFacade interface {
	CapitalReader
	CapitalWriter
	CapitalTransactionSupport
}

// CapitalRepositoryWithTx extends CapitalRepositoryFacade with transaction capabilities
type CapitalRepositoryWithTx interface {
	CapitalRepositoryFacade
	TransactionManager
}
