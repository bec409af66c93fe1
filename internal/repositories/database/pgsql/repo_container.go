package pgsql

import (
	portsrepo "github.com/SscSPs/pos_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository to the shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		TaxRepo:          newPgxTaxRepository(dbPool),
		CapitalRepo:      newPgxCapitalRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
	}
}
