package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/pos_backoffice/internal/apperrors"
	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/SscSPs/pos_backoffice/internal/core/services"
	"github.com/SscSPs/pos_backoffice/internal/dto"
	"github.com/SscSPs/pos_backoffice/internal/platform/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	repo     *MockExchangeRateRepository
	currency *MockCurrencyReader
	clock    *clock.FakeClock
	tx       *mockTx
	service  *services.ExchangeRateService
	userID   string
	pair     domain.CurrencyPair
	t0       time.Time
	t1       time.Time
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.repo = new(MockExchangeRateRepository)
	suite.currency = new(MockCurrencyReader)
	suite.clock = clock.Fake(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	suite.tx = &mockTx{}
	suite.service = services.NewExchangeRateService(suite.repo, suite.currency,
		services.WithClock(suite.clock), services.WithMaxRetries(2))
	suite.userID = uuid.NewString()
	suite.pair = domain.CurrencyPair{Base: "MMK", Quote: "CNY"}
	suite.t0 = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	suite.t1 = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	suite.currency.On("GetCurrencyByCode", mock.Anything, "MMK").Return(&domain.Currency{CurrencyCode: "MMK"}, nil).Maybe()
	suite.currency.On("GetCurrencyByCode", mock.Anything, "CNY").Return(&domain.Currency{CurrencyCode: "CNY"}, nil).Maybe()
}

func (suite *ExchangeRateServiceTestSuite) request(rate string, status domain.VersionStatus, from time.Time) dto.SubmitExchangeRateRequest {
	return dto.SubmitExchangeRateRequest{
		BaseCurrency:  "mmk",
		QuoteCurrency: "cny",
		Rate:          decimal.RequireFromString(rate),
		Status:        status,
		EffectiveFrom: from,
	}
}

func (suite *ExchangeRateServiceTestSuite) TestSubmitRate_ActiveSupersedesCurrent() {
	r1 := domain.ExchangeRateRecord{
		ExchangeRateID: uuid.NewString(),
		BaseCurrency:   "MMK",
		QuoteCurrency:  "CNY",
		Rate:           decimal.RequireFromString("3.30"),
		Status:         domain.StatusActive,
		EffectiveFrom:  suite.t0,
	}
	now := suite.clock.Now()

	var saved domain.ExchangeRateRecord
	suite.repo.On("Begin", mock.Anything).Return(suite.tx, nil).Once()
	suite.repo.On("LockCurrencyPair", mock.Anything, suite.tx, suite.pair).Return(nil).Once()
	suite.repo.On("FindActiveExchangeRatesForUpdate", mock.Anything, suite.tx, suite.pair).Return([]domain.ExchangeRateRecord{r1}, nil).Once()
	suite.repo.On("CloseActiveExchangeRatesInTx", mock.Anything, suite.tx, suite.pair, suite.t1, suite.userID, now).Return(int64(1), nil).Once()
	suite.repo.On("SaveExchangeRateInTx", mock.Anything, suite.tx, mock.AnythingOfType("domain.ExchangeRateRecord")).
		Run(func(args mock.Arguments) { saved = args.Get(2).(domain.ExchangeRateRecord) }).
		Return(nil).Once()
	suite.repo.On("UpsertCurrentRatePointerInTx", mock.Anything, suite.tx, mock.MatchedBy(func(p domain.CurrentRatePointer) bool {
		return p.BaseCurrency == "MMK" && p.QuoteCurrency == "CNY" && p.ExchangeRateID == saved.ExchangeRateID && p.UpdatedBy == suite.userID
	})).Return(nil).Once()
	suite.repo.On("Commit", mock.Anything, suite.tx).Return(nil).Once()

	record, err := suite.service.SubmitRate(context.Background(), suite.request("3.35", domain.StatusActive, suite.t1), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(saved, *record)
	suite.Equal("MMK", record.BaseCurrency)
	suite.Equal("CNY", record.QuoteCurrency)
	suite.True(decimal.RequireFromString("3.35").Equal(record.Rate))
	suite.Equal(suite.t1, record.EffectiveFrom)
	suite.Nil(record.EffectiveTo)
	suite.Equal(suite.userID, record.CreatedBy)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestSubmitRate_FirstActiveRateSkipsClose() {
	suite.repo.On("Begin", mock.Anything).Return(suite.tx, nil).Once()
	suite.repo.On("LockCurrencyPair", mock.Anything, suite.tx, suite.pair).Return(nil).Once()
	suite.repo.On("FindActiveExchangeRatesForUpdate", mock.Anything, suite.tx, suite.pair).Return([]domain.ExchangeRateRecord{}, nil).Once()
	suite.repo.On("SaveExchangeRateInTx", mock.Anything, suite.tx, mock.AnythingOfType("domain.ExchangeRateRecord")).Return(nil).Once()
	suite.repo.On("UpsertCurrentRatePointerInTx", mock.Anything, suite.tx, mock.AnythingOfType("domain.CurrentRatePointer")).Return(nil).Once()
	suite.repo.On("Commit", mock.Anything, suite.tx).Return(nil).Once()

	_, err := suite.service.SubmitRate(context.Background(), suite.request("3.30", domain.StatusActive, suite.t0), suite.userID)

	suite.Require().NoError(err)
	suite.repo.AssertNotCalled(suite.T(), "CloseActiveExchangeRatesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestSubmitRate_InactiveLeavesPointerAlone() {
	to := suite.t1
	req := suite.request("3.10", domain.StatusInactive, suite.t0)
	req.EffectiveTo = &to

	suite.repo.On("Begin", mock.Anything).Return(suite.tx, nil).Once()
	suite.repo.On("LockCurrencyPair", mock.Anything, suite.tx, suite.pair).Return(nil).Once()
	suite.repo.On("SaveExchangeRateInTx", mock.Anything, suite.tx, mock.MatchedBy(func(r domain.ExchangeRateRecord) bool {
		return r.Status == domain.StatusInactive && r.EffectiveTo != nil && r.EffectiveTo.Equal(to)
	})).Return(nil).Once()
	suite.repo.On("Commit", mock.Anything, suite.tx).Return(nil).Once()

	record, err := suite.service.SubmitRate(context.Background(), req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusInactive, record.Status)
	suite.repo.AssertNotCalled(suite.T(), "FindActiveExchangeRatesForUpdate", mock.Anything, mock.Anything, mock.Anything)
	suite.repo.AssertNotCalled(suite.T(), "UpsertCurrentRatePointerInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestSubmitRate_ValidationErrors() {
	before := suite.t0.Add(-time.Hour)
	tests := []struct {
		name  string
		req   dto.SubmitExchangeRateRequest
		field string
	}{
		{"short base code", dto.SubmitExchangeRateRequest{BaseCurrency: "MM", QuoteCurrency: "CNY", Rate: decimal.NewFromInt(1), Status: domain.StatusActive, EffectiveFrom: suite.t0}, "baseCurrency"},
		{"same currency", dto.SubmitExchangeRateRequest{BaseCurrency: "CNY", QuoteCurrency: "cny", Rate: decimal.NewFromInt(1), Status: domain.StatusActive, EffectiveFrom: suite.t0}, "quoteCurrency"},
		{"zero rate", dto.SubmitExchangeRateRequest{BaseCurrency: "MMK", QuoteCurrency: "CNY", Rate: decimal.Zero, Status: domain.StatusActive, EffectiveFrom: suite.t0}, "rate"},
		{"negative rate", dto.SubmitExchangeRateRequest{BaseCurrency: "MMK", QuoteCurrency: "CNY", Rate: decimal.NewFromInt(-2), Status: domain.StatusActive, EffectiveFrom: suite.t0}, "rate"},
		{"rate finer than ledger scale", dto.SubmitExchangeRateRequest{BaseCurrency: "MMK", QuoteCurrency: "CNY", Rate: decimal.RequireFromString("3.3000004"), Status: domain.StatusActive, EffectiveFrom: suite.t0}, "rate"},
		{"unknown status", dto.SubmitExchangeRateRequest{BaseCurrency: "MMK", QuoteCurrency: "CNY", Rate: decimal.NewFromInt(1), Status: "pending", EffectiveFrom: suite.t0}, "status"},
		{"missing effectiveFrom", dto.SubmitExchangeRateRequest{BaseCurrency: "MMK", QuoteCurrency: "CNY", Rate: decimal.NewFromInt(1), Status: domain.StatusActive}, "effectiveFrom"},
		{"effectiveTo before effectiveFrom", dto.SubmitExchangeRateRequest{BaseCurrency: "MMK", QuoteCurrency: "CNY", Rate: decimal.NewFromInt(1), Status: domain.StatusActive, EffectiveFrom: suite.t0, EffectiveTo: &before}, "effectiveTo"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			record, err := suite.service.SubmitRate(context.Background(), tt.req, suite.userID)

			suite.Nil(record)
			var vErr *apperrors.ValidationError
			suite.Require().ErrorAs(err, &vErr)
			suite.Contains(vErr.Fields, tt.field)
		})
	}
	suite.repo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestSubmitRate_UnknownCurrency() {
	suite.currency.On("GetCurrencyByCode", mock.Anything, "XYZ").Return(nil, apperrors.NewNotFoundError("currency XYZ")).Once()
	req := suite.request("1.5", domain.StatusActive, suite.t0)
	req.QuoteCurrency = "XYZ"

	record, err := suite.service.SubmitRate(context.Background(), req, suite.userID)

	suite.Nil(record)
	var vErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &vErr)
	suite.Equal("unknown currency XYZ", vErr.Fields["quoteCurrency"])
	suite.repo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestSubmitRate_BackdatedActiveRateRejected() {
	r1 := domain.ExchangeRateRecord{ExchangeRateID: uuid.NewString(), Status: domain.StatusActive, EffectiveFrom: suite.t1}

	suite.repo.On("Begin", mock.Anything).Return(suite.tx, nil).Once()
	suite.repo.On("LockCurrencyPair", mock.Anything, suite.tx, suite.pair).Return(nil).Once()
	suite.repo.On("FindActiveExchangeRatesForUpdate", mock.Anything, suite.tx, suite.pair).Return([]domain.ExchangeRateRecord{r1}, nil).Once()
	suite.repo.On("Rollback", mock.Anything, suite.tx).Return(nil).Once()

	record, err := suite.service.SubmitRate(context.Background(), suite.request("3.20", domain.StatusActive, suite.t0), suite.userID)

	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.repo.AssertNotCalled(suite.T(), "SaveExchangeRateInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.repo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestSubmitRate_PointerFailureRollsBack() {
	suite.repo.On("Begin", mock.Anything).Return(suite.tx, nil).Once()
	suite.repo.On("LockCurrencyPair", mock.Anything, suite.tx, suite.pair).Return(nil).Once()
	suite.repo.On("FindActiveExchangeRatesForUpdate", mock.Anything, suite.tx, suite.pair).Return([]domain.ExchangeRateRecord{}, nil).Once()
	suite.repo.On("SaveExchangeRateInTx", mock.Anything, suite.tx, mock.Anything).Return(nil).Once()
	suite.repo.On("UpsertCurrentRatePointerInTx", mock.Anything, suite.tx, mock.Anything).Return(assert.AnError).Once()
	suite.repo.On("Rollback", mock.Anything, suite.tx).Return(nil).Once()

	record, err := suite.service.SubmitRate(context.Background(), suite.request("3.30", domain.StatusActive, suite.t0), suite.userID)

	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrTransaction)
	suite.ErrorIs(err, assert.AnError)
	suite.repo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestSubmitRate_RetriesAfterConflict() {
	conflict := fmt.Errorf("failed to insert exchange rate: %w", apperrors.ErrConflict)

	suite.repo.On("Begin", mock.Anything).Return(suite.tx, nil).Twice()
	suite.repo.On("LockCurrencyPair", mock.Anything, suite.tx, suite.pair).Return(nil).Twice()
	suite.repo.On("FindActiveExchangeRatesForUpdate", mock.Anything, suite.tx, suite.pair).Return([]domain.ExchangeRateRecord{}, nil).Twice()
	suite.repo.On("SaveExchangeRateInTx", mock.Anything, suite.tx, mock.Anything).Return(conflict).Once()
	suite.repo.On("Rollback", mock.Anything, suite.tx).Return(nil).Once()
	suite.repo.On("SaveExchangeRateInTx", mock.Anything, suite.tx, mock.Anything).Return(nil).Once()
	suite.repo.On("UpsertCurrentRatePointerInTx", mock.Anything, suite.tx, mock.Anything).Return(nil).Once()
	suite.repo.On("Commit", mock.Anything, suite.tx).Return(nil).Once()

	record, err := suite.service.SubmitRate(context.Background(), suite.request("3.30", domain.StatusActive, suite.t0), suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(record)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrentRate() {
	expected := &domain.ExchangeRateRecord{ExchangeRateID: uuid.NewString(), BaseCurrency: "MMK", QuoteCurrency: "CNY"}
	suite.repo.On("FindCurrentExchangeRate", mock.Anything, suite.pair).Return(expected, nil).Twice()

	first, err := suite.service.GetCurrentRate(context.Background(), "mmk", "cny")
	suite.Require().NoError(err)
	second, err := suite.service.GetCurrentRate(context.Background(), "MMK", "CNY")
	suite.Require().NoError(err)

	suite.Equal(expected, first)
	suite.Equal(first, second)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrentRate_NoPointer() {
	suite.repo.On("FindCurrentExchangeRate", mock.Anything, suite.pair).Return(nil, apperrors.NewNotFoundError("current rate for MMK/CNY")).Once()

	record, err := suite.service.GetCurrentRate(context.Background(), "MMK", "CNY")

	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrentRate_SamePair() {
	_, err := suite.service.GetCurrentRate(context.Background(), "CNY", "CNY")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestListHistory_NormalizesFilter() {
	expected := []domain.ExchangeRateRecord{{ExchangeRateID: uuid.NewString()}}
	suite.repo.On("ListExchangeRateHistory", mock.Anything, domain.ExchangeRateFilter{BaseCurrency: "MMK", Limit: 50}).Return(expected, nil).Once()
	suite.repo.On("ListExchangeRateHistory", mock.Anything, domain.ExchangeRateFilter{QuoteCurrency: "CNY", Limit: 500, Offset: 10}).Return(nil, nil).Once()

	records, err := suite.service.ListHistory(context.Background(), domain.ExchangeRateFilter{BaseCurrency: " mmk"})
	suite.Require().NoError(err)
	suite.Equal(expected, records)

	records, err = suite.service.ListHistory(context.Background(), domain.ExchangeRateFilter{QuoteCurrency: "cny", Limit: 9000, Offset: 10})
	suite.Require().NoError(err)
	suite.NotNil(records)
	suite.Empty(records)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestListHistory_InvalidFilter() {
	_, err := suite.service.ListHistory(context.Background(), domain.ExchangeRateFilter{BaseCurrency: "EURO"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestDeleteRate() {
	id := uuid.NewString()
	suite.repo.On("DeleteExchangeRate", mock.Anything, id).Return(nil).Once()

	suite.NoError(suite.service.DeleteRate(context.Background(), id))
	suite.ErrorIs(suite.service.DeleteRate(context.Background(), "not-a-uuid"), apperrors.ErrNotFound)
	suite.repo.AssertExpectations(suite.T())
}

func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
