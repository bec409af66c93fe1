package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/pos_backoffice/internal/apperrors"
	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/SscSPs/pos_backoffice/internal/core/services"
	"github.com/SscSPs/pos_backoffice/internal/dto"
	"github.com/SscSPs/pos_backoffice/internal/platform/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func newCapital(code string, initial, remaining int64) domain.Capital {
	return domain.Capital{
		CapitalID:       uuid.NewString(),
		CurrencyCode:    code,
		InitialAmount:   decimal.NewFromInt(initial),
		RemainingAmount: decimal.NewFromInt(remaining),
	}
}

type CapitalServiceTestSuite struct {
	suite.Suite
	store    *ledgerStore
	currency *MockCurrencyReader
	clock    *clock.FakeClock
	service  *services.CapitalService
	userID   string
}

func (suite *CapitalServiceTestSuite) SetupTest() {
	suite.store = newLedgerStore(newCapital("USD", 100, 60))
	suite.currency = new(MockCurrencyReader)
	suite.clock = clock.Fake(time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC))
	suite.service = services.NewCapitalService(suite.store, suite.currency, services.WithClock(suite.clock))
	suite.userID = uuid.NewString()
}

func (suite *CapitalServiceTestSuite) TestGetBalance_IsStableAcrossReads() {
	first, err := suite.service.GetBalance(context.Background(), "usd")
	suite.Require().NoError(err)
	second, err := suite.service.GetBalance(context.Background(), "USD")
	suite.Require().NoError(err)

	suite.True(decimal.NewFromInt(60).Equal(first))
	suite.True(first.Equal(second))
}

func (suite *CapitalServiceTestSuite) TestGetBalance_Errors() {
	_, err := suite.service.GetBalance(context.Background(), "EUR")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.GetBalance(context.Background(), "E1")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CapitalServiceTestSuite) TestCreateCapital() {
	suite.currency.On("GetCurrencyByCode", mock.Anything, "CNY").Return(&domain.Currency{CurrencyCode: "CNY", Precision: 2}, nil).Once()

	capital, err := suite.service.CreateCapital(context.Background(), dto.CreateCapitalRequest{
		CurrencyCode:  "cny",
		InitialAmount: decimal.NewFromInt(500),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("CNY", capital.CurrencyCode)
	suite.True(capital.InitialAmount.Equal(capital.RemainingAmount))
	suite.Equal(suite.clock.Now(), capital.CreatedAt)

	balance, err := suite.service.GetBalance(context.Background(), "CNY")
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(500).Equal(balance))
	suite.currency.AssertExpectations(suite.T())
}

func (suite *CapitalServiceTestSuite) TestCreateCapital_Rejections() {
	suite.currency.On("GetCurrencyByCode", mock.Anything, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.currency.On("GetCurrencyByCode", mock.Anything, "XYZ").Return(nil, apperrors.NewNotFoundError("currency XYZ")).Once()

	_, err := suite.service.CreateCapital(context.Background(), dto.CreateCapitalRequest{CurrencyCode: "USD", InitialAmount: decimal.NewFromInt(1)}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = suite.service.CreateCapital(context.Background(), dto.CreateCapitalRequest{CurrencyCode: "XYZ", InitialAmount: decimal.NewFromInt(1)}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateCapital(context.Background(), dto.CreateCapitalRequest{CurrencyCode: "USD", InitialAmount: decimal.NewFromInt(-1)}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.currency.AssertExpectations(suite.T())
}

func (suite *CapitalServiceTestSuite) TestAdjustCapital_KeepsSpentPortion() {
	capital, err := suite.service.AdjustCapital(context.Background(), "USD", dto.AdjustCapitalRequest{
		InitialAmount: decimal.NewFromInt(150),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(150).Equal(capital.InitialAmount))
	suite.True(decimal.NewFromInt(110).Equal(capital.RemainingAmount))
	suite.Equal(suite.userID, capital.LastUpdatedBy)

	stored := suite.store.snapshot().capitals["USD"]
	suite.True(decimal.NewFromInt(110).Equal(stored.RemainingAmount))
}

func (suite *CapitalServiceTestSuite) TestAdjustCapital_BelowSpentRejected() {
	_, err := suite.service.AdjustCapital(context.Background(), "USD", dto.AdjustCapitalRequest{
		InitialAmount: decimal.NewFromInt(30),
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	stored := suite.store.snapshot().capitals["USD"]
	suite.True(decimal.NewFromInt(100).Equal(stored.InitialAmount))
	suite.True(decimal.NewFromInt(60).Equal(stored.RemainingAmount))
}

func (suite *CapitalServiceTestSuite) TestCapital_RejectsSubScaleAmounts() {
	_, err := suite.service.CreateCapital(context.Background(), dto.CreateCapitalRequest{
		CurrencyCode:  "EUR",
		InitialAmount: decimal.RequireFromString("100.0000001"),
	}, suite.userID)
	var vErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &vErr)
	suite.Equal(domain.ScaleMessage, vErr.Fields["initialAmount"])
	suite.currency.AssertNotCalled(suite.T(), "GetCurrencyByCode", mock.Anything, mock.Anything)

	_, err = suite.service.AdjustCapital(context.Background(), "USD", dto.AdjustCapitalRequest{
		InitialAmount: decimal.RequireFromString("100.0000001"),
	}, suite.userID)
	suite.Require().ErrorAs(err, &vErr)
	suite.Equal(domain.ScaleMessage, vErr.Fields["initialAmount"])

	state := suite.store.snapshot()
	suite.NotContains(state.capitals, "EUR")
	suite.True(decimal.NewFromInt(100).Equal(state.capitals["USD"].InitialAmount))
	suite.True(decimal.NewFromInt(60).Equal(state.capitals["USD"].RemainingAmount))
}

func (suite *CapitalServiceTestSuite) TestAdjustCapital_Missing() {
	_, err := suite.service.AdjustCapital(context.Background(), "EUR", dto.AdjustCapitalRequest{InitialAmount: decimal.NewFromInt(10)}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CapitalServiceTestSuite) TestReconcile() {
	result, err := suite.service.Reconcile(context.Background(), "USD")

	suite.Require().NoError(err)
	suite.False(result.Balanced, "40 spent with no posted expenses")
	suite.True(decimal.NewFromInt(100).Equal(result.ExpectedRemaining))
	suite.True(result.PostedAmount.IsZero())
}

func (suite *CapitalServiceTestSuite) TestFormatAmount() {
	suite.currency.On("GetCurrencyByCode", mock.Anything, "USD").Return(&domain.Currency{CurrencyCode: "USD", Precision: 2}, nil).Once()
	suite.currency.On("GetCurrencyByCode", mock.Anything, "ZZZ").Return(nil, apperrors.NewNotFoundError("currency ZZZ")).Once()

	suite.Equal("$1,234.50", suite.service.FormatAmount(context.Background(), decimal.RequireFromString("1234.5"), "USD"))
	suite.Equal("7.25 ZZZ", suite.service.FormatAmount(context.Background(), decimal.RequireFromString("7.25"), "ZZZ"))
	suite.currency.AssertExpectations(suite.T())
}

func (suite *CapitalServiceTestSuite) TestListAndDelete() {
	capitals, err := suite.service.ListCapitals(context.Background())
	suite.Require().NoError(err)
	suite.Len(capitals, 1)

	suite.Require().NoError(suite.service.DeleteCapital(context.Background(), "usd"))
	suite.ErrorIs(suite.service.DeleteCapital(context.Background(), "USD"), apperrors.ErrNotFound)

	capitals, err = suite.service.ListCapitals(context.Background())
	suite.Require().NoError(err)
	suite.Empty(capitals)
}

func TestCapitalService(t *testing.T) {
	suite.Run(t, new(CapitalServiceTestSuite))
}
