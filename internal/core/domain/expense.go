package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a business expense event, split across one or more currencies.
type Expense struct {
	ExpenseID   string            `json:"expenseID"`
	Date        time.Time         `json:"date"`
	CategoryID  string            `json:"categoryID"`
	Description string            `json:"description"`
	Currencies  []ExpenseCurrency `json:"currencies"`
	AuditFields
}

// ExpenseCurrency is the amount of an expense charged against one currency's capital.
type ExpenseCurrency struct {
	ExpenseCurrencyID string          `json:"expenseCurrencyID"`
	ExpenseID         string          `json:"expenseID"`
	CurrencyCode      string          `json:"currencyCode"`
	Amount            decimal.Decimal `json:"amount"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ExpenseAmount is a requested (currency, amount) line before it is posted.
type ExpenseAmount struct {
	CurrencyCode string
	Amount       decimal.Decimal
}

// TotalsByCurrency sums line amounts per currency.
func TotalsByCurrency(lines []ExpenseCurrency) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		totals[l.CurrencyCode] = totals[l.CurrencyCode].Add(l.Amount)
	}
	return totals
}
