package services

import (
	"context"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/SscSPs/pos_backoffice/internal/dto"
)

// TaxReaderSvc defines read operations for the tax version ledger
type TaxReaderSvc interface {
	// ListTaxes returns every tax with the version in force.
	ListTaxes(ctx context.Context) ([]domain.Tax, error)

	// ListTaxHistory lists versions newest first, optionally for one tax.
	ListTaxHistory(ctx context.Context, taxID string, limit int) ([]domain.TaxVersion, error)
}

// TaxWriterSvc defines write operations for the tax version ledger
type TaxWriterSvc interface {
	// CreateInitialVersion creates a tax and its first version.
	CreateInitialVersion(ctx context.Context, req dto.CreateTaxRequest, userID string) (*domain.Tax, error)

	// ReviseTax closes the current version and opens a new one at the same instant.
	ReviseTax(ctx context.Context, taxID string, req dto.ReviseTaxRequest, userID string) (*domain.Tax, error)

	// DeleteTax removes the tax pointer, keeping its history.
	DeleteTax(ctx context.Context, taxID string) error
}

// TaxSvcFacade combines all tax-related service interfaces
type TaxSvcFacade interface {
	TaxReaderSvc
	TaxWriterSvc
}
