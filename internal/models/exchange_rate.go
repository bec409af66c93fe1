package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRateHistory is a row of exchange_rate_history.
type ExchangeRateHistory struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	BaseCurrency   string          `db:"base_currency"`  // FK -> Currency.currencyCode
	QuoteCurrency  string          `db:"quote_currency"` // FK -> Currency.currencyCode
	Rate           decimal.Decimal `db:"rate"`
	Status         string          `db:"status"`
	EffectiveFrom  time.Time       `db:"effective_from"`
	EffectiveTo    *time.Time      `db:"effective_to"` // Nullable
	AuditFields
}
