package domain

import (
	"github.com/SscSPs/pos_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Capital is the running balance of funds available in one currency.
type Capital struct {
	CapitalID       string          `json:"capitalID"`
	CurrencyCode    string          `json:"currencyCode"`
	InitialAmount   decimal.Decimal `json:"initialAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	AuditFields
}

// Spent is the portion of the initial capital currently committed to expenses.
func (c Capital) Spent() decimal.Decimal {
	return c.InitialAmount.Sub(c.RemainingAmount)
}

// Debit removes amount from the remaining balance, refusing to go negative.
func (c *Capital) Debit(amount decimal.Decimal) error {
	if c.RemainingAmount.LessThan(amount) {
		return &apperrors.InsufficientFundsError{
			CurrencyCode: c.CurrencyCode,
			Remaining:    c.RemainingAmount,
			Requested:    amount,
		}
	}
	c.RemainingAmount = c.RemainingAmount.Sub(amount)
	return nil
}

// Credit returns amount to the remaining balance.
func (c *Capital) Credit(amount decimal.Decimal) {
	c.RemainingAmount = c.RemainingAmount.Add(amount)
}

// CapitalReconciliation compares a stored balance against the expense lines posted to it.
type CapitalReconciliation struct {
	CurrencyCode      string          `json:"currencyCode"`
	InitialAmount     decimal.Decimal `json:"initialAmount"`
	RemainingAmount   decimal.Decimal `json:"remainingAmount"`
	PostedAmount      decimal.Decimal `json:"postedAmount"`
	ExpectedRemaining decimal.Decimal `json:"expectedRemaining"`
	Balanced          bool            `json:"balanced"`
}

// Reconcile checks remaining == initial - posted.
func (c Capital) Reconcile(posted decimal.Decimal) CapitalReconciliation {
	expected := c.InitialAmount.Sub(posted)
	return CapitalReconciliation{
		CurrencyCode:      c.CurrencyCode,
		InitialAmount:     c.InitialAmount,
		RemainingAmount:   c.RemainingAmount,
		PostedAmount:      posted,
		ExpectedRemaining: expected,
		Balanced:          expected.Equal(c.RemainingAmount),
	}
}
