package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/pos_backoffice/internal/apperrors"
	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/pos_backoffice/internal/models"
	"github.com/SscSPs/pos_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expenses and their currency lines.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryWithTx {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepositoryWithTx = (*PgxExpenseRepository)(nil)

const (
	expenseColumns         = `expense_id, expense_date, category_id, description, created_at, created_by, last_updated_at, last_updated_by`
	expenseCurrencyColumns = `expense_currency_id, expense_id, currency_code, amount, position, created_at`
)

func scanExpense(row pgx.Row) (models.Expense, error) {
	var e models.Expense
	err := row.Scan(
		&e.ExpenseID,
		&e.ExpenseDate,
		&e.CategoryID,
		&e.Description,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

// findLines loads the lines of the given expenses, grouped by expense ID in posting order.
func (r *PgxExpenseRepository) findLines(ctx context.Context, q querier, expenseIDs []string) (map[string][]models.ExpenseCurrency, error) {
	result := make(map[string][]models.ExpenseCurrency, len(expenseIDs))
	if len(expenseIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ` + expenseCurrencyColumns + `
		FROM expense_currencies
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, position;
	`
	rows, err := q.Query(ctx, query, expenseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense lines: %w", mapPgError(err))
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExpenseCurrency, error) {
		var l models.ExpenseCurrency
		err := row.Scan(&l.ExpenseCurrencyID, &l.ExpenseID, &l.CurrencyCode, &l.Amount, &l.Position, &l.CreatedAt)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense lines: %w", err)
	}
	for _, l := range lines {
		result[l.ExpenseID] = append(result[l.ExpenseID], l)
	}
	return result, nil
}

func (r *PgxExpenseRepository) findExpense(ctx context.Context, q querier, query, expenseID string) (*domain.Expense, error) {
	m, err := scanExpense(q.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("expense " + expenseID)
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, mapPgError(err))
	}
	lines, err := r.findLines(ctx, q, []string{expenseID})
	if err != nil {
		return nil, err
	}
	e := mapping.ToDomainExpense(m, lines[expenseID])
	return &e, nil
}

// FindExpenseByID retrieves an expense with its currency lines.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return r.findExpense(ctx, r.Pool, `SELECT `+expenseColumns+` FROM expenses WHERE expense_id = $1;`, expenseID)
}

// FindExpenseByIDForUpdate selects an expense and locks it, loading its lines.
// Must be called within a transaction.
func (r *PgxExpenseRepository) FindExpenseByIDForUpdate(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error) {
	return r.findExpense(ctx, tx, `SELECT `+expenseColumns+` FROM expenses WHERE expense_id = $1 FOR UPDATE;`, expenseID)
}

// ListExpenses retrieves a page of expenses, most recent date first.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, limit int, offset int) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		ORDER BY expense_date DESC, created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Expense, error) {
		return scanExpense(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan expenses: %w", err)
	}

	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.ExpenseID
	}
	lines, err := r.findLines(ctx, r.Pool, ids)
	if err != nil {
		return nil, err
	}

	expenses := make([]domain.Expense, len(ms))
	for i, m := range ms {
		expenses[i] = mapping.ToDomainExpense(m, lines[m.ExpenseID])
	}
	return expenses, nil
}

// SaveExpenseInTx inserts the expense row.
func (r *PgxExpenseRepository) SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	_, err := tx.Exec(ctx, `INSERT INTO expenses (`+expenseColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		m.ExpenseID,
		m.ExpenseDate,
		m.CategoryID,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense %s: %w", m.ExpenseID, mapPgError(err))
	}
	return nil
}

// UpdateExpenseInTx rewrites the scalar fields of an expense.
func (r *PgxExpenseRepository) UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses
		SET expense_date = $2, category_id = $3, description = $4, last_updated_at = $5, last_updated_by = $6
		WHERE expense_id = $1;
	`
	tag, err := tx.Exec(ctx, query, m.ExpenseID, m.ExpenseDate, m.CategoryID, m.Description, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("expense " + m.ExpenseID)
	}
	return nil
}

// SaveExpenseCurrenciesInTx inserts currency lines in one batch, preserving their order.
func (r *PgxExpenseRepository) SaveExpenseCurrenciesInTx(ctx context.Context, tx pgx.Tx, lines []domain.ExpenseCurrency) error {
	if len(lines) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO expense_currencies (` + expenseCurrencyColumns + `) VALUES ($1, $2, $3, $4, $5, $6);`
	for i, line := range lines {
		m := mapping.ToModelExpenseCurrency(line)
		m.Position = i
		batch.Queue(query, m.ExpenseCurrencyID, m.ExpenseID, m.CurrencyCode, m.Amount, m.Position, m.CreatedAt)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert expense lines for %s: %w", lines[0].ExpenseID, mapPgError(err))
	}
	return nil
}

// DeleteExpenseCurrenciesInTx removes every line of an expense.
func (r *PgxExpenseRepository) DeleteExpenseCurrenciesInTx(ctx context.Context, tx pgx.Tx, expenseID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM expense_currencies WHERE expense_id = $1;`, expenseID); err != nil {
		return fmt.Errorf("failed to delete lines of expense %s: %w", expenseID, mapPgError(err))
	}
	return nil
}

// DeleteExpenseInTx removes the expense row.
func (r *PgxExpenseRepository) DeleteExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("expense " + expenseID)
	}
	return nil
}
