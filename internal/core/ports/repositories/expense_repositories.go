package repositories

import (
	"context"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ExpenseReader defines read operations for expenses
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense with its currency lines.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a page of expenses, most recent date first.
	ListExpenses(ctx context.Context, limit int, offset int) ([]domain.Expense, error)
}

// ExpenseTransactionSupport defines the steps of expense posting, run inside one transaction.
type ExpenseTransactionSupport interface {
	// FindExpenseByIDForUpdate selects and locks an expense, loading its lines.
	FindExpenseByIDForUpdate(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error)

	// SaveExpenseInTx inserts the expense row.
	SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error

	// UpdateExpenseInTx rewrites the scalar fields of an expense.
	UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error

	// SaveExpenseCurrenciesInTx inserts currency lines.
	SaveExpenseCurrenciesInTx(ctx context.Context, tx pgx.Tx, lines []domain.ExpenseCurrency) error

	// DeleteExpenseCurrenciesInTx removes every line of an expense.
	DeleteExpenseCurrenciesInTx(ctx context.Context, tx pgx.Tx, expenseID string) error

	// DeleteExpenseInTx removes the expense row.
	DeleteExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseTransactionSupport
}

// ExpenseRepositoryWithTx extends ExpenseRepositoryFacade with transaction capabilities
type ExpenseRepositoryWithTx interface {
	ExpenseRepositoryFacade
	TransactionManager
}
