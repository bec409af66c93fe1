package models

import "github.com/shopspring/decimal"

// Capital is a row of capitals.
type Capital struct {
	CapitalID       string          `db:"capital_id"`
	CurrencyCode    string          `db:"currency_code"`
	InitialAmount   decimal.Decimal `db:"initial_amount"`
	RemainingAmount decimal.Decimal `db:"remaining_amount"`
	AuditFields
}
