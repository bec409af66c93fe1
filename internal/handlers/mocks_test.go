package handlers_test

import (
	"context"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/pos_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pos_backoffice/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetCurrentRate(ctx context.Context, base, quote string) (*domain.ExchangeRateRecord, error) {
	args := m.Called(ctx, base, quote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRateRecord), args.Error(1)
}

func (m *MockExchangeRateService) ListHistory(ctx context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRateRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRateRecord), args.Error(1)
}

func (m *MockExchangeRateService) SubmitRate(ctx context.Context, req dto.SubmitExchangeRateRequest, userID string) (*domain.ExchangeRateRecord, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRateRecord), args.Error(1)
}

func (m *MockExchangeRateService) DeleteRate(ctx context.Context, exchangeRateID string) error {
	return m.Called(ctx, exchangeRateID).Error(0)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock TaxService ---
type MockTaxService struct {
	mock.Mock
}

func (m *MockTaxService) ListTaxes(ctx context.Context) ([]domain.Tax, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tax), args.Error(1)
}

func (m *MockTaxService) ListTaxHistory(ctx context.Context, taxID string, limit int) ([]domain.TaxVersion, error) {
	args := m.Called(ctx, taxID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxVersion), args.Error(1)
}

func (m *MockTaxService) CreateInitialVersion(ctx context.Context, req dto.CreateTaxRequest, userID string) (*domain.Tax, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tax), args.Error(1)
}

func (m *MockTaxService) ReviseTax(ctx context.Context, taxID string, req dto.ReviseTaxRequest, userID string) (*domain.Tax, error) {
	args := m.Called(ctx, taxID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tax), args.Error(1)
}

func (m *MockTaxService) DeleteTax(ctx context.Context, taxID string) error {
	return m.Called(ctx, taxID).Error(0)
}

var _ portssvc.TaxSvcFacade = (*MockTaxService)(nil)

// --- Mock CapitalService ---
type MockCapitalService struct {
	mock.Mock
}

func (m *MockCapitalService) GetBalance(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, currencyCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCapitalService) ListCapitals(ctx context.Context) ([]domain.Capital, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Capital), args.Error(1)
}

func (m *MockCapitalService) Reconcile(ctx context.Context, currencyCode string) (*domain.CapitalReconciliation, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapitalReconciliation), args.Error(1)
}

func (m *MockCapitalService) FormatAmount(ctx context.Context, amount decimal.Decimal, currencyCode string) string {
	return m.Called(ctx, amount, currencyCode).String(0)
}

func (m *MockCapitalService) CreateCapital(ctx context.Context, req dto.CreateCapitalRequest, userID string) (*domain.Capital, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Capital), args.Error(1)
}

func (m *MockCapitalService) AdjustCapital(ctx context.Context, currencyCode string, req dto.AdjustCapitalRequest, userID string) (*domain.Capital, error) {
	args := m.Called(ctx, currencyCode, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Capital), args.Error(1)
}

func (m *MockCapitalService) DeleteCapital(ctx context.Context, currencyCode string) error {
	return m.Called(ctx, currencyCode).Error(0)
}

var _ portssvc.CapitalSvcFacade = (*MockCapitalService)(nil)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) ListExpenses(ctx context.Context, limit, offset int) ([]domain.Expense, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseService) PostExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, expenseID string, userID string) error {
	return m.Called(ctx, expenseID, userID).Error(0)
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)
