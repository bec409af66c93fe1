package services

import (
	portsrepo "github.com/SscSPs/pos_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pos_backoffice/internal/platform/clock"
	"github.com/SscSPs/pos_backoffice/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	opts := []ServiceOption{
		WithClock(clock.Real()),
		WithMaxRetries(cfg.TxMaxRetries),
		WithCurrencyCacheTTL(cfg.CurrencyCacheTTL),
	}

	container := &portssvc.ServiceContainer{}

	// Currency reference data is shared by the rate and capital ledgers
	currencySvc := NewCurrencyService(repos.CurrencyRepo, opts...)
	container.Currency = currencySvc

	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, currencySvc, opts...)
	container.Tax = NewTaxService(repos.TaxRepo, opts...)
	container.Capital = NewCapitalService(repos.CapitalRepo, currencySvc, opts...)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.CapitalRepo, opts...)

	return container
}
