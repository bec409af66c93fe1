package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// mockTx stands in for a live transaction. Repositories are mocked, so its methods are never called.
type mockTx struct {
	pgx.Tx
}

// --- Mock TransactionManager ---
type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *mockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *mockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock CurrencyReaderSvc ---
type MockCurrencyReader struct {
	mock.Mock
}

func (m *MockCurrencyReader) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyReader) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mockTxManager
}

func (m *MockExchangeRateRepository) FindExchangeRateByID(ctx context.Context, exchangeRateID string) (*domain.ExchangeRateRecord, error) {
	args := m.Called(ctx, exchangeRateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRateRecord), args.Error(1)
}

func (m *MockExchangeRateRepository) FindCurrentExchangeRate(ctx context.Context, pair domain.CurrencyPair) (*domain.ExchangeRateRecord, error) {
	args := m.Called(ctx, pair)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRateRecord), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRateHistory(ctx context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRateRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRateRecord), args.Error(1)
}

func (m *MockExchangeRateRepository) DeleteExchangeRate(ctx context.Context, exchangeRateID string) error {
	return m.Called(ctx, exchangeRateID).Error(0)
}

func (m *MockExchangeRateRepository) LockCurrencyPair(ctx context.Context, tx pgx.Tx, pair domain.CurrencyPair) error {
	return m.Called(ctx, tx, pair).Error(0)
}

func (m *MockExchangeRateRepository) FindActiveExchangeRatesForUpdate(ctx context.Context, tx pgx.Tx, pair domain.CurrencyPair) ([]domain.ExchangeRateRecord, error) {
	args := m.Called(ctx, tx, pair)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRateRecord), args.Error(1)
}

func (m *MockExchangeRateRepository) CloseActiveExchangeRatesInTx(ctx context.Context, tx pgx.Tx, pair domain.CurrencyPair, closedAt time.Time, userID string, now time.Time) (int64, error) {
	args := m.Called(ctx, tx, pair, closedAt, userID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRateInTx(ctx context.Context, tx pgx.Tx, record domain.ExchangeRateRecord) error {
	return m.Called(ctx, tx, record).Error(0)
}

func (m *MockExchangeRateRepository) UpsertCurrentRatePointerInTx(ctx context.Context, tx pgx.Tx, pointer domain.CurrentRatePointer) error {
	return m.Called(ctx, tx, pointer).Error(0)
}

// --- Mock TaxRepository ---
type MockTaxRepository struct {
	mockTxManager
}

func (m *MockTaxRepository) FindTaxByID(ctx context.Context, taxID string) (*domain.Tax, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tax), args.Error(1)
}

func (m *MockTaxRepository) ListTaxes(ctx context.Context) ([]domain.Tax, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tax), args.Error(1)
}

func (m *MockTaxRepository) ListTaxVersions(ctx context.Context, taxID string, limit int) ([]domain.TaxVersion, error) {
	args := m.Called(ctx, taxID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxVersion), args.Error(1)
}

func (m *MockTaxRepository) DeleteTax(ctx context.Context, taxID string) error {
	return m.Called(ctx, taxID).Error(0)
}

func (m *MockTaxRepository) FindTaxByIDForUpdate(ctx context.Context, tx pgx.Tx, taxID string) (*domain.Tax, error) {
	args := m.Called(ctx, tx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tax), args.Error(1)
}

func (m *MockTaxRepository) FindTaxVersionByIDForUpdate(ctx context.Context, tx pgx.Tx, taxVersionID string) (*domain.TaxVersion, error) {
	args := m.Called(ctx, tx, taxVersionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxVersion), args.Error(1)
}

func (m *MockTaxRepository) SaveTaxInTx(ctx context.Context, tx pgx.Tx, tax domain.Tax) error {
	return m.Called(ctx, tx, tax).Error(0)
}

func (m *MockTaxRepository) SaveTaxVersionInTx(ctx context.Context, tx pgx.Tx, version domain.TaxVersion) error {
	return m.Called(ctx, tx, version).Error(0)
}

func (m *MockTaxRepository) CloseTaxVersionInTx(ctx context.Context, tx pgx.Tx, taxVersionID string, closedAt time.Time, userID string) error {
	return m.Called(ctx, tx, taxVersionID, closedAt, userID).Error(0)
}

func (m *MockTaxRepository) UpdateTaxPointerInTx(ctx context.Context, tx pgx.Tx, taxID, taxVersionID, userID string, now time.Time) error {
	return m.Called(ctx, tx, taxID, taxVersionID, userID, now).Error(0)
}
