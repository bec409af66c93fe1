package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency
// Example: amount 12.3456 with CNY (precision 2) returns "12.35"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.Round(int32(currency.Precision)).String()
}

// FormatMoney renders amount the way the currency is usually displayed, e.g. "$1,234.50".
// Currencies go-money does not know fall back to the currency's own precision followed by its code.
func FormatMoney(amount decimal.Decimal, currency domain.Currency) string {
	cur := money.GetCurrency(currency.CurrencyCode)
	if cur == nil {
		return amount.StringFixed(int32(currency.Precision)) + " " + currency.CurrencyCode
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
