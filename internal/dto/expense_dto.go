package dto

import (
	"time"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseAmountRequest is the amount of an expense charged against one currency.
type ExpenseAmountRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required"`
	Amount       decimal.Decimal `json:"amount"`
}

// CreateExpenseRequest defines the data needed to post an expense.
type CreateExpenseRequest struct {
	Date        time.Time              `json:"date" binding:"required"`
	CategoryID  string                 `json:"categoryID" binding:"required"`
	Description string                 `json:"description"`
	Amounts     []ExpenseAmountRequest `json:"amounts" binding:"required,min=1,dive"`
}

// UpdateExpenseRequest replaces an expense's fields and lines. Lines with a zero amount are dropped.
type UpdateExpenseRequest struct {
	Date        time.Time              `json:"date" binding:"required"`
	CategoryID  string                 `json:"categoryID" binding:"required"`
	Description string                 `json:"description"`
	Amounts     []ExpenseAmountRequest `json:"amounts" binding:"dive"`
}

// ListExpensesQuery holds the pagination parameters of an expense listing.
type ListExpensesQuery struct {
	Limit  int `form:"limit,default=15" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ExpenseCurrencyResponse is one line of an expense.
type ExpenseCurrencyResponse struct {
	ExpenseCurrencyID string          `json:"expenseCurrencyID"`
	CurrencyCode      string          `json:"currencyCode"`
	Amount            decimal.Decimal `json:"amount"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID     string                    `json:"expenseID"`
	Date          time.Time                 `json:"date"`
	CategoryID    string                    `json:"categoryID"`
	Description   string                    `json:"description"`
	Currencies    []ExpenseCurrencyResponse `json:"currencies"`
	CreatedAt     time.Time                 `json:"createdAt"`
	CreatedBy     string                    `json:"createdBy"`
	LastUpdatedAt time.Time                 `json:"lastUpdatedAt"`
	LastUpdatedBy string                    `json:"lastUpdatedBy"`
}

// ToExpenseAmounts converts request lines to domain amounts.
func ToExpenseAmounts(lines []ExpenseAmountRequest) []domain.ExpenseAmount {
	amounts := make([]domain.ExpenseAmount, len(lines))
	for i, l := range lines {
		amounts[i] = domain.ExpenseAmount{CurrencyCode: l.CurrencyCode, Amount: l.Amount}
	}
	return amounts
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	lines := make([]ExpenseCurrencyResponse, len(e.Currencies))
	for i, l := range e.Currencies {
		lines[i] = ExpenseCurrencyResponse{
			ExpenseCurrencyID: l.ExpenseCurrencyID,
			CurrencyCode:      l.CurrencyCode,
			Amount:            l.Amount,
		}
	}
	return ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		Date:          e.Date,
		CategoryID:    e.CategoryID,
		Description:   e.Description,
		Currencies:    lines,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
		LastUpdatedAt: e.LastUpdatedAt,
		LastUpdatedBy: e.LastUpdatedBy,
	}
}

// ToListExpenseResponse converts expenses to ExpenseResponse DTOs.
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}
