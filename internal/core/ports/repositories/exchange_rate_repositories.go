package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ExchangeRateReader defines read operations for the rate history ledger
type ExchangeRateReader interface {
	// FindExchangeRateByID retrieves one history record.
	FindExchangeRateByID(ctx context.Context, exchangeRateID string) (*domain.ExchangeRateRecord, error)

	// FindCurrentExchangeRate resolves the pair's pointer to its record.
	FindCurrentExchangeRate(ctx context.Context, pair domain.CurrencyPair) (*domain.ExchangeRateRecord, error)

	// ListExchangeRateHistory lists records newest first.
	ListExchangeRateHistory(ctx context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRateRecord, error)
}

// ExchangeRateWriter defines write operations outside of a ledger transaction
type ExchangeRateWriter interface {
	// DeleteExchangeRate removes a record; a pointer referencing it is removed with it.
	DeleteExchangeRate(ctx context.Context, exchangeRateID string) error
}

// ExchangeRateTransactionSupport defines the steps of a rate submission, run inside one transaction.
type ExchangeRateTransactionSupport interface {
	// LockCurrencyPair serializes submissions for a pair until tx ends.
	LockCurrencyPair(ctx context.Context, tx pgx.Tx, pair domain.CurrencyPair) error

	// FindActiveExchangeRatesForUpdate selects and locks the pair's active records.
	FindActiveExchangeRatesForUpdate(ctx context.Context, tx pgx.Tx, pair domain.CurrencyPair) ([]domain.ExchangeRateRecord, error)

	// CloseActiveExchangeRatesInTx marks every active record of the pair inactive, ending at closedAt.
	CloseActiveExchangeRatesInTx(ctx context.Context, tx pgx.Tx, pair domain.CurrencyPair, closedAt time.Time, userID string, now time.Time) (int64, error)

	// SaveExchangeRateInTx inserts a new history record.
	SaveExchangeRateInTx(ctx context.Context, tx pgx.Tx, record domain.ExchangeRateRecord) error

	// UpsertCurrentRatePointerInTx points the pair at a record.
	UpsertCurrentRatePointerInTx(ctx context.Context, tx pgx.Tx, pointer domain.CurrentRatePointer) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
	ExchangeRateTransactionSupport
}

// ExchangeRateRepositoryWithTx extends ExchangeRateRepositoryFacade with transaction capabilities
type ExchangeRateRepositoryWithTx interface {
	ExchangeRateRepositoryFacade
	TransactionManager
}
