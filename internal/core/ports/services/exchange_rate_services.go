package services

import (
	"context"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/SscSPs/pos_backoffice/internal/dto"
)

// ExchangeRateReaderSvc defines read operations for the rate history ledger
type ExchangeRateReaderSvc interface {
	// GetCurrentRate returns the record the pair's pointer references.
	GetCurrentRate(ctx context.Context, base, quote string) (*domain.ExchangeRateRecord, error)

	// ListHistory lists history records newest first.
	ListHistory(ctx context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRateRecord, error)
}

// ExchangeRateWriterSvc defines write operations for the rate history ledger
type ExchangeRateWriterSvc interface {
	// SubmitRate appends a rate record, superseding the pair's active records when it is active.
	SubmitRate(ctx context.Context, req dto.SubmitExchangeRateRequest, userID string) (*domain.ExchangeRateRecord, error)

	// DeleteRate removes a history record.
	DeleteRate(ctx context.Context, exchangeRateID string) error
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
