package utils

import (
	"testing"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatWithCurrencyPrecision(t *testing.T) {
	cny := domain.Currency{CurrencyCode: "CNY", Precision: 2}
	assert.Equal(t, "12.35", FormatWithCurrencyPrecision(decimal.RequireFromString("12.3456"), cny))
}

func TestFormatMoney(t *testing.T) {
	usd := domain.Currency{CurrencyCode: "USD", Precision: 2}
	assert.Equal(t, "$1,234.50", FormatMoney(decimal.RequireFromString("1234.5"), usd))

	unknown := domain.Currency{CurrencyCode: "ZZZ", Precision: 3}
	assert.Equal(t, "10.500 ZZZ", FormatMoney(decimal.RequireFromString("10.5"), unknown))

	whole := domain.Currency{CurrencyCode: "QQQ", Precision: 0}
	assert.Equal(t, "11 QQQ", FormatMoney(decimal.RequireFromString("10.5"), whole))
}
