package services

import (
	"context"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/SscSPs/pos_backoffice/internal/dto"
	"github.com/shopspring/decimal"
)

// CapitalReaderSvc defines read operations for capital balances
type CapitalReaderSvc interface {
	// GetBalance returns the remaining capital of a currency.
	GetBalance(ctx context.Context, currencyCode string) (decimal.Decimal, error)

	// ListCapitals returns every capital balance.
	ListCapitals(ctx context.Context) ([]domain.Capital, error)

	// Reconcile compares the remaining balance against the posted expense lines.
	Reconcile(ctx context.Context, currencyCode string) (*domain.CapitalReconciliation, error)

	// FormatAmount renders an amount in the currency's display format.
	FormatAmount(ctx context.Context, amount decimal.Decimal, currencyCode string) string
}

// CapitalWriterSvc defines write operations for capital balances
type CapitalWriterSvc interface {
	// CreateCapital opens a balance for a currency with remaining = initial.
	CreateCapital(ctx context.Context, req dto.CreateCapitalRequest, userID string) (*domain.Capital, error)

	// AdjustCapital changes the initial amount, keeping the spent portion.
	AdjustCapital(ctx context.Context, currencyCode string, req dto.AdjustCapitalRequest, userID string) (*domain.Capital, error)

	// DeleteCapital removes the balance of a currency.
	DeleteCapital(ctx context.Context, currencyCode string) error
}

// CapitalSvcFacade combines all capital-related service interfaces
type CapitalSvcFacade interface {
	CapitalReaderSvc
	CapitalWriterSvc
}
