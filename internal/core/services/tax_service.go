package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/pos_backoffice/internal/apperrors"
	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pos_backoffice/internal/dto"
	"github.com/SscSPs/pos_backoffice/internal/platform/clock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	maxTaxNameLength       = 50
	defaultTaxHistoryLimit = 20
	maxTaxHistoryLimit     = 500
)

// TaxService maintains tax version chains and the pointer to each tax's current version.
type TaxService struct {
	BaseService
	taxRepo portsrepo.TaxRepositoryWithTx
	tx      txRunner
	clock   clock.Clock
}

var _ portssvc.TaxSvcFacade = (*TaxService)(nil)

// NewTaxService creates a new TaxService.
func NewTaxService(taxRepo portsrepo.TaxRepositoryWithTx, opts ...ServiceOption) *TaxService {
	o := applyServiceOptions(opts)
	return &TaxService{
		taxRepo: taxRepo,
		tx:      newTxRunner(taxRepo, o.maxRetries),
		clock:   o.clock,
	}
}

func validateTaxFields(name string, rate decimal.Decimal, fields map[string]string) string {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		fields["taxName"] = "is required"
	case utf8.RuneCountInString(name) > maxTaxNameLength:
		fields["taxName"] = fmt.Sprintf("must be at most %d characters", maxTaxNameLength)
	}
	if rate.IsNegative() {
		fields["taxRate"] = "must not be negative"
	} else if !domain.FitsLedgerScale(rate) {
		fields["taxRate"] = domain.ScaleMessage
	}
	return name
}

// CreateInitialVersion creates a tax pointer and its first active, open-ended version.
func (s *TaxService) CreateInitialVersion(ctx context.Context, req dto.CreateTaxRequest, userID string) (*domain.Tax, error) {
	fields := map[string]string{}
	name := validateTaxFields(req.TaxName, req.TaxRate, fields)
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields)
	}

	now := s.clock.Now()
	effectiveFrom := now
	if req.EffectiveFrom != nil && !req.EffectiveFrom.IsZero() {
		effectiveFrom = req.EffectiveFrom.UTC()
	}
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	version := domain.TaxVersion{
		TaxVersionID:  uuid.NewString(),
		TaxID:         uuid.NewString(),
		TaxName:       name,
		TaxRate:       req.TaxRate,
		Status:        domain.StatusActive,
		EffectiveFrom: effectiveFrom,
		AuditFields:   audit,
	}
	tax := domain.Tax{
		TaxID:            version.TaxID,
		CurrentVersionID: version.TaxVersionID,
		AuditFields:      audit,
	}

	err := s.tx.run(ctx, "create tax", func(tx pgx.Tx) error {
		if err := s.taxRepo.SaveTaxInTx(ctx, tx, tax); err != nil {
			return err
		}
		return s.taxRepo.SaveTaxVersionInTx(ctx, tx, version)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create tax", slog.String("tax_name", name))
		return nil, err
	}

	tax.CurrentVersion = &version
	s.LogInfo(ctx, "Tax created",
		slog.String("tax_id", tax.TaxID),
		slog.String("tax_version_id", version.TaxVersionID))
	return &tax, nil
}

// ReviseTax closes the version in force and opens a new one at the same timestamp,
// then repoints the tax at the new version.
func (s *TaxService) ReviseTax(ctx context.Context, taxID string, req dto.ReviseTaxRequest, userID string) (*domain.Tax, error) {
	if err := uuid.Validate(taxID); err != nil {
		return nil, apperrors.NewNotFoundError("tax " + taxID)
	}

	fields := map[string]string{}
	name := validateTaxFields(req.TaxName, req.TaxRate, fields)
	status := req.Status
	if status == "" {
		status = domain.StatusActive
	}
	if !status.IsValid() {
		fields["status"] = "must be active or inactive"
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields)
	}

	var revised domain.Tax
	err := s.tx.run(ctx, "revise tax", func(tx pgx.Tx) error {
		tax, err := s.taxRepo.FindTaxByIDForUpdate(ctx, tx, taxID)
		if err != nil {
			return err
		}
		current, err := s.taxRepo.FindTaxVersionByIDForUpdate(ctx, tx, tax.CurrentVersionID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		// A version scheduled in the future is closed where it starts.
		ts := now
		if current.EffectiveFrom.After(ts) {
			ts = current.EffectiveFrom
		}

		if err := s.taxRepo.CloseTaxVersionInTx(ctx, tx, current.TaxVersionID, ts, userID); err != nil {
			return err
		}

		next := domain.TaxVersion{
			TaxVersionID:  uuid.NewString(),
			TaxID:         tax.TaxID,
			TaxName:       name,
			TaxRate:       req.TaxRate,
			Status:        status,
			EffectiveFrom: ts,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.taxRepo.SaveTaxVersionInTx(ctx, tx, next); err != nil {
			return err
		}
		if err := s.taxRepo.UpdateTaxPointerInTx(ctx, tx, tax.TaxID, next.TaxVersionID, userID, now); err != nil {
			return err
		}

		revised = *tax
		revised.CurrentVersionID = next.TaxVersionID
		revised.CurrentVersion = &next
		revised.LastUpdatedAt = now
		revised.LastUpdatedBy = userID
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to revise tax", slog.String("tax_id", taxID))
		return nil, err
	}

	s.LogInfo(ctx, "Tax revised",
		slog.String("tax_id", taxID),
		slog.String("tax_version_id", revised.CurrentVersionID))
	return &revised, nil
}

// ListTaxes returns every tax with the version in force.
func (s *TaxService) ListTaxes(ctx context.Context) ([]domain.Tax, error) {
	taxes, err := s.taxRepo.ListTaxes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list taxes: %w", err)
	}
	if taxes == nil {
		return []domain.Tax{}, nil
	}
	return taxes, nil
}

// ListTaxHistory lists versions newest first. An empty taxID lists every tax's versions.
func (s *TaxService) ListTaxHistory(ctx context.Context, taxID string, limit int) ([]domain.TaxVersion, error) {
	if taxID != "" {
		if err := uuid.Validate(taxID); err != nil {
			return nil, apperrors.NewValidationError(map[string]string{"taxId": "must be a valid id"})
		}
	}
	if limit <= 0 {
		limit = defaultTaxHistoryLimit
	} else if limit > maxTaxHistoryLimit {
		limit = maxTaxHistoryLimit
	}

	versions, err := s.taxRepo.ListTaxVersions(ctx, taxID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax history: %w", err)
	}
	if versions == nil {
		return []domain.TaxVersion{}, nil
	}
	return versions, nil
}

// DeleteTax removes the tax pointer. Its versions stay in the history.
func (s *TaxService) DeleteTax(ctx context.Context, taxID string) error {
	if err := uuid.Validate(taxID); err != nil {
		return apperrors.NewNotFoundError("tax " + taxID)
	}
	if err := s.taxRepo.DeleteTax(ctx, taxID); err != nil {
		return fmt.Errorf("failed to delete tax %s: %w", taxID, err)
	}
	s.LogInfo(ctx, "Tax deleted", slog.String("tax_id", taxID))
	return nil
}
