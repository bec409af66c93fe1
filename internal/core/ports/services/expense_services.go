package services

import (
	"context"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/SscSPs/pos_backoffice/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses
type ExpenseReaderSvc interface {
	// GetExpense retrieves an expense with its lines.
	GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a page of expenses, most recent first.
	ListExpenses(ctx context.Context, limit, offset int) ([]domain.Expense, error)
}

// ExpenseWriterSvc defines the posting operations that move capital
type ExpenseWriterSvc interface {
	// PostExpense records an expense and debits capital for every line.
	PostExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)

	// UpdateExpense refunds the old lines and debits the new ones.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error)

	// DeleteExpense refunds every line and removes the expense.
	DeleteExpense(ctx context.Context, expenseID string, userID string) error
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
