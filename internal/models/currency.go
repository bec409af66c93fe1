package models

// Currency represents a supported currency.
type Currency struct {
	CurrencyCode string `db:"currency_code"` // Primary Key (e.g., "MMK")
	Symbol       string `db:"symbol"`        // e.g., "K"
	Name         string `db:"name"`          // e.g., "Myanmar Kyat"
	Precision    int    `db:"precision"`
	AuditFields
}
