package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/pos_backoffice/internal/apperrors"
	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pos_backoffice/internal/dto"
	"github.com/SscSPs/pos_backoffice/internal/platform/clock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	defaultExpensePageSize = 15
	maxExpensePageSize     = 100
)

// ExpenseService posts expenses against capital. Every posting, edit and removal moves
// capital balances and expense lines together in one transaction.
type ExpenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryWithTx
	capitalRepo portsrepo.CapitalRepositoryFacade
	tx          txRunner
	clock       clock.Clock
}

var _ portssvc.ExpenseSvcFacade = (*ExpenseService)(nil)

// NewExpenseService creates a new ExpenseService. Transactions are opened through the
// expense repository; capital rows are locked and written on the same transaction.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryWithTx, capitalRepo portsrepo.CapitalRepositoryFacade, opts ...ServiceOption) *ExpenseService {
	o := applyServiceOptions(opts)
	return &ExpenseService{
		expenseRepo: expenseRepo,
		capitalRepo: capitalRepo,
		tx:          newTxRunner(expenseRepo, o.maxRetries),
		clock:       o.clock,
	}
}

// expenseInput is a validated create or update request.
type expenseInput struct {
	date        time.Time
	categoryID  string
	description string
	amounts     []domain.ExpenseAmount
}

// validateExpense checks the request fields. Zero amounts are only allowed on update,
// where they are dropped.
func validateExpense(date time.Time, categoryID, description string, lines []dto.ExpenseAmountRequest, isUpdate bool) (expenseInput, error) {
	fields := map[string]string{}
	if date.IsZero() {
		fields["date"] = "is required"
	}
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		fields["categoryID"] = "is required"
	}
	if !isUpdate && len(lines) == 0 {
		fields["amounts"] = "at least one amount is required"
	}

	amounts := make([]domain.ExpenseAmount, 0, len(lines))
	for i, l := range dto.ToExpenseAmounts(lines) {
		code, err := domain.NormalizeCurrencyCode(l.CurrencyCode)
		if err != nil {
			fields[fmt.Sprintf("amounts[%d].currencyCode", i)] = err.Error()
			continue
		}
		switch {
		case l.Amount.IsNegative():
			fields[fmt.Sprintf("amounts[%d].amount", i)] = "must not be negative"
			continue
		case l.Amount.IsZero() && !isUpdate:
			fields[fmt.Sprintf("amounts[%d].amount", i)] = "must be greater than zero"
			continue
		case l.Amount.IsZero():
			continue
		case !domain.FitsLedgerScale(l.Amount):
			fields[fmt.Sprintf("amounts[%d].amount", i)] = domain.ScaleMessage
			continue
		}
		amounts = append(amounts, domain.ExpenseAmount{CurrencyCode: code, Amount: l.Amount})
	}
	if len(fields) > 0 {
		return expenseInput{}, apperrors.NewValidationError(fields)
	}

	y, m, d := date.Date()
	return expenseInput{
		date:        time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		categoryID:  categoryID,
		description: strings.TrimSpace(description),
		amounts:     amounts,
	}, nil
}

// debit locks the capital row of each amount in the given order and takes the amount from it.
func (s *ExpenseService) debit(ctx context.Context, tx pgx.Tx, expenseID string, amounts []domain.ExpenseAmount, userID string, now time.Time) ([]domain.ExpenseCurrency, error) {
	lines := make([]domain.ExpenseCurrency, 0, len(amounts))
	for _, a := range amounts {
		capital, err := s.capitalRepo.FindCapitalByCurrencyForUpdate(ctx, tx, a.CurrencyCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: no capital set up for %s", apperrors.ErrInsufficientConfiguration, a.CurrencyCode)
			}
			return nil, err
		}
		if err := capital.Debit(a.Amount); err != nil {
			return nil, err
		}
		capital.LastUpdatedAt = now
		capital.LastUpdatedBy = userID
		if err := s.capitalRepo.UpdateCapitalInTx(ctx, tx, *capital); err != nil {
			return nil, err
		}

		lines = append(lines, domain.ExpenseCurrency{
			ExpenseCurrencyID: uuid.NewString(),
			ExpenseID:         expenseID,
			CurrencyCode:      a.CurrencyCode,
			Amount:            a.Amount,
			CreatedAt:         now,
		})
	}
	return lines, nil
}

// refund returns every line's amount to its capital. Lines whose capital row no longer
// exists are skipped.
func (s *ExpenseService) refund(ctx context.Context, tx pgx.Tx, expense *domain.Expense, userID string, now time.Time) error {
	for _, line := range expense.Currencies {
		capital, err := s.capitalRepo.FindCapitalByCurrencyForUpdate(ctx, tx, line.CurrencyCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.GetLogger(ctx).Warn("Skipping refund, capital no longer exists",
					slog.String("expense_id", expense.ExpenseID),
					slog.String("currency_code", line.CurrencyCode),
					slog.String("amount", line.Amount.String()))
				continue
			}
			return err
		}
		capital.Credit(line.Amount)
		capital.LastUpdatedAt = now
		capital.LastUpdatedBy = userID
		if err := s.capitalRepo.UpdateCapitalInTx(ctx, tx, *capital); err != nil {
			return err
		}
	}
	return nil
}

// PostExpense records an expense and debits capital for each of its amounts.
// If any currency lacks capital or funds, nothing is written.
func (s *ExpenseService) PostExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	in, err := validateExpense(req.Date, req.CategoryID, req.Description, req.Amounts, false)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		Date:        in.date,
		CategoryID:  in.categoryID,
		Description: in.description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err = s.tx.run(ctx, "post expense", func(tx pgx.Tx) error {
		if err := s.expenseRepo.SaveExpenseInTx(ctx, tx, expense); err != nil {
			return err
		}
		lines, err := s.debit(ctx, tx, expense.ExpenseID, in.amounts, userID, now)
		if err != nil {
			return err
		}
		if err := s.expenseRepo.SaveExpenseCurrenciesInTx(ctx, tx, lines); err != nil {
			return err
		}
		expense.Currencies = lines
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post expense", slog.String("category_id", in.categoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense posted",
		slog.String("expense_id", expense.ExpenseID),
		slog.Int("lines", len(expense.Currencies)))
	return &expense, nil
}

// UpdateExpense refunds every existing line, rewrites the expense and debits the new amounts.
// A failure in the debit phase also undoes the refunds.
func (s *ExpenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error) {
	if err := uuid.Validate(expenseID); err != nil {
		return nil, apperrors.NewNotFoundError("expense " + expenseID)
	}
	in, err := validateExpense(req.Date, req.CategoryID, req.Description, req.Amounts, true)
	if err != nil {
		return nil, err
	}

	var updated domain.Expense
	err = s.tx.run(ctx, "update expense", func(tx pgx.Tx) error {
		existing, err := s.expenseRepo.FindExpenseByIDForUpdate(ctx, tx, expenseID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if err := s.refund(ctx, tx, existing, userID, now); err != nil {
			return err
		}

		expense := *existing
		expense.Date = in.date
		expense.CategoryID = in.categoryID
		expense.Description = in.description
		expense.LastUpdatedAt = now
		expense.LastUpdatedBy = userID
		if err := s.expenseRepo.UpdateExpenseInTx(ctx, tx, expense); err != nil {
			return err
		}
		if err := s.expenseRepo.DeleteExpenseCurrenciesInTx(ctx, tx, expenseID); err != nil {
			return err
		}

		lines, err := s.debit(ctx, tx, expenseID, in.amounts, userID, now)
		if err != nil {
			return err
		}
		if err := s.expenseRepo.SaveExpenseCurrenciesInTx(ctx, tx, lines); err != nil {
			return err
		}
		expense.Currencies = lines
		updated = expense
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense updated",
		slog.String("expense_id", expenseID),
		slog.Int("lines", len(updated.Currencies)))
	return &updated, nil
}

// DeleteExpense refunds every line and removes the expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID string, userID string) error {
	if err := uuid.Validate(expenseID); err != nil {
		return apperrors.NewNotFoundError("expense " + expenseID)
	}

	err := s.tx.run(ctx, "delete expense", func(tx pgx.Tx) error {
		existing, err := s.expenseRepo.FindExpenseByIDForUpdate(ctx, tx, expenseID)
		if err != nil {
			return err
		}
		if err := s.refund(ctx, tx, existing, userID, s.clock.Now()); err != nil {
			return err
		}
		if err := s.expenseRepo.DeleteExpenseCurrenciesInTx(ctx, tx, expenseID); err != nil {
			return err
		}
		return s.expenseRepo.DeleteExpenseInTx(ctx, tx, expenseID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete expense", slog.String("expense_id", expenseID))
		return err
	}

	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

// GetExpense retrieves an expense with its lines.
func (s *ExpenseService) GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	if err := uuid.Validate(expenseID); err != nil {
		return nil, apperrors.NewNotFoundError("expense " + expenseID)
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense %s: %w", expenseID, err)
	}
	return expense, nil
}

// ListExpenses retrieves a page of expenses, most recent first.
func (s *ExpenseService) ListExpenses(ctx context.Context, limit, offset int) ([]domain.Expense, error) {
	if limit <= 0 {
		limit = defaultExpensePageSize
	} else if limit > maxExpensePageSize {
		limit = maxExpensePageSize
	}
	if offset < 0 {
		offset = 0
	}

	expenses, err := s.expenseRepo.ListExpenses(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}
