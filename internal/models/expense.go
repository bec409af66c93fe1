package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a row of expenses.
type Expense struct {
	ExpenseID   string    `db:"expense_id"`
	ExpenseDate time.Time `db:"expense_date"`
	CategoryID  string    `db:"category_id"`
	Description string    `db:"description"`
	AuditFields
}

// ExpenseCurrency is a row of expense_currencies.
type ExpenseCurrency struct {
	ExpenseCurrencyID string          `db:"expense_currency_id"`
	ExpenseID         string          `db:"expense_id"`
	CurrencyCode      string          `db:"currency_code"`
	Amount            decimal.Decimal `db:"amount"`
	Position          int             `db:"position"` // Order of the line within its expense
	CreatedAt         time.Time       `db:"created_at"`
}
