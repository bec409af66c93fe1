package mapping

import (
	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/SscSPs/pos_backoffice/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense (lines are mapped separately)
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		ExpenseDate: d.Date,
		CategoryID:  d.CategoryID,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToModelExpenseCurrency converts a domain ExpenseCurrency to a model ExpenseCurrency
func ToModelExpenseCurrency(d domain.ExpenseCurrency) models.ExpenseCurrency {
	return models.ExpenseCurrency{
		ExpenseCurrencyID: d.ExpenseCurrencyID,
		ExpenseID:         d.ExpenseID,
		CurrencyCode:      d.CurrencyCode,
		Amount:            d.Amount,
		CreatedAt:         d.CreatedAt,
	}
}

// ToDomainExpenseCurrency converts a model ExpenseCurrency to a domain ExpenseCurrency
func ToDomainExpenseCurrency(m models.ExpenseCurrency) domain.ExpenseCurrency {
	return domain.ExpenseCurrency{
		ExpenseCurrencyID: m.ExpenseCurrencyID,
		ExpenseID:         m.ExpenseID,
		CurrencyCode:      m.CurrencyCode,
		Amount:            m.Amount,
		CreatedAt:         m.CreatedAt,
	}
}

// ToDomainExpense converts a model Expense and its lines to a domain Expense
func ToDomainExpense(m models.Expense, lines []models.ExpenseCurrency) domain.Expense {
	currencies := make([]domain.ExpenseCurrency, len(lines))
	for i, l := range lines {
		currencies[i] = ToDomainExpenseCurrency(l)
	}
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		Date:        m.ExpenseDate,
		CategoryID:  m.CategoryID,
		Description: m.Description,
		Currencies:  currencies,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
