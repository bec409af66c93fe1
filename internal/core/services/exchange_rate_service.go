package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

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
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// ExchangeRateService maintains the append-only rate history and the per-pair current pointer.
type ExchangeRateService struct {
	BaseService
	rateRepo    portsrepo.ExchangeRateRepositoryWithTx
	currencySvc portssvc.CurrencyReaderSvc
	tx          txRunner
	clock       clock.Clock
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryWithTx, currencySvc portssvc.CurrencyReaderSvc, opts ...ServiceOption) *ExchangeRateService {
	o := applyServiceOptions(opts)
	return &ExchangeRateService{
		rateRepo:    rateRepo,
		currencySvc: currencySvc,
		tx:          newTxRunner(rateRepo, o.maxRetries),
		clock:       o.clock,
	}
}

// SubmitRate records a rate for a currency pair. An active submission closes every active record of
// the pair at the new effectiveFrom and moves the pair's pointer to the new record, all in one transaction.
func (s *ExchangeRateService) SubmitRate(ctx context.Context, req dto.SubmitExchangeRateRequest, userID string) (*domain.ExchangeRateRecord, error) {
	logger := s.GetLogger(ctx)

	pair, err := s.validateSubmission(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	record := domain.ExchangeRateRecord{
		ExchangeRateID: uuid.NewString(),
		BaseCurrency:   pair.Base,
		QuoteCurrency:  pair.Quote,
		Rate:           req.Rate,
		Status:         req.Status,
		EffectiveFrom:  req.EffectiveFrom.UTC(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.EffectiveTo != nil {
		to := req.EffectiveTo.UTC()
		record.EffectiveTo = &to
	}

	err = s.tx.run(ctx, "submit exchange rate", func(tx pgx.Tx) error {
		if err := s.rateRepo.LockCurrencyPair(ctx, tx, pair); err != nil {
			return err
		}

		if record.Status == domain.StatusActive {
			active, err := s.rateRepo.FindActiveExchangeRatesForUpdate(ctx, tx, pair)
			if err != nil {
				return err
			}
			for _, current := range active {
				if record.EffectiveFrom.Before(current.EffectiveFrom) {
					return apperrors.NewValidationError(map[string]string{
						"effectiveFrom": fmt.Sprintf("must not be before the active rate's effectiveFrom (%s)", current.EffectiveFrom.Format(time.RFC3339)),
					})
				}
			}
			if len(active) > 0 {
				closed, err := s.rateRepo.CloseActiveExchangeRatesInTx(ctx, tx, pair, record.EffectiveFrom, userID, now)
				if err != nil {
					return err
				}
				logger.Debug("Closed superseded exchange rates", slog.String("pair", pair.String()), slog.Int64("closed", closed))
			}
		}

		if err := s.rateRepo.SaveExchangeRateInTx(ctx, tx, record); err != nil {
			return err
		}

		if record.Status == domain.StatusActive {
			return s.rateRepo.UpsertCurrentRatePointerInTx(ctx, tx, domain.CurrentRatePointer{
				BaseCurrency:   pair.Base,
				QuoteCurrency:  pair.Quote,
				ExchangeRateID: record.ExchangeRateID,
				UpdatedAt:      now,
				UpdatedBy:      userID,
			})
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to submit exchange rate", slog.String("pair", pair.String()))
		return nil, err
	}

	logger.Info("Exchange rate submitted",
		slog.String("exchange_rate_id", record.ExchangeRateID),
		slog.String("pair", pair.String()),
		slog.String("status", string(record.Status)))
	return &record, nil
}

// validateSubmission checks the request fields and that both currencies exist.
func (s *ExchangeRateService) validateSubmission(ctx context.Context, req dto.SubmitExchangeRateRequest) (domain.CurrencyPair, error) {
	fields := map[string]string{}

	base, err := domain.NormalizeCurrencyCode(req.BaseCurrency)
	if err != nil {
		fields["baseCurrency"] = err.Error()
	}
	quote, err := domain.NormalizeCurrencyCode(req.QuoteCurrency)
	if err != nil {
		fields["quoteCurrency"] = err.Error()
	}
	if len(fields) == 0 && base == quote {
		fields["quoteCurrency"] = "must differ from baseCurrency"
	}
	if !req.Rate.GreaterThan(decimal.Zero) {
		fields["rate"] = "must be greater than zero"
	} else if !domain.FitsLedgerScale(req.Rate) {
		fields["rate"] = domain.ScaleMessage
	}
	if !req.Status.IsValid() {
		fields["status"] = "must be active or inactive"
	}
	if req.EffectiveFrom.IsZero() {
		fields["effectiveFrom"] = "is required"
	} else if req.EffectiveTo != nil && !req.EffectiveTo.After(req.EffectiveFrom) {
		fields["effectiveTo"] = "must be after effectiveFrom"
	}
	if len(fields) > 0 {
		return domain.CurrencyPair{}, apperrors.NewValidationError(fields)
	}

	for field, code := range map[string]string{"baseCurrency": base, "quoteCurrency": quote} {
		if _, err := s.currencySvc.GetCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				fields[field] = fmt.Sprintf("unknown currency %s", code)
				continue
			}
			return domain.CurrencyPair{}, fmt.Errorf("failed to validate currency %s: %w", code, err)
		}
	}
	if len(fields) > 0 {
		return domain.CurrencyPair{}, apperrors.NewValidationError(fields)
	}

	return domain.CurrencyPair{Base: base, Quote: quote}, nil
}

// GetCurrentRate returns the record the pair's pointer references. It always reads from storage.
func (s *ExchangeRateService) GetCurrentRate(ctx context.Context, base, quote string) (*domain.ExchangeRateRecord, error) {
	pair, err := domain.NewCurrencyPair(base, quote)
	if err != nil {
		return nil, apperrors.NewValidationError(map[string]string{"currencyPair": err.Error()})
	}
	record, err := s.rateRepo.FindCurrentExchangeRate(ctx, pair)
	if err != nil {
		return nil, fmt.Errorf("failed to get current rate for %s: %w", pair, err)
	}
	return record, nil
}

// ListHistory lists history records newest first.
func (s *ExchangeRateService) ListHistory(ctx context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRateRecord, error) {
	fields := map[string]string{}
	if filter.BaseCurrency != "" {
		code, err := domain.NormalizeCurrencyCode(filter.BaseCurrency)
		if err != nil {
			fields["base"] = err.Error()
		}
		filter.BaseCurrency = code
	}
	if filter.QuoteCurrency != "" {
		code, err := domain.NormalizeCurrencyCode(filter.QuoteCurrency)
		if err != nil {
			fields["quote"] = err.Error()
		}
		filter.QuoteCurrency = code
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields)
	}

	if filter.Limit <= 0 {
		filter.Limit = defaultHistoryLimit
	} else if filter.Limit > maxHistoryLimit {
		filter.Limit = maxHistoryLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	records, err := s.rateRepo.ListExchangeRateHistory(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rate history: %w", err)
	}
	if records == nil {
		return []domain.ExchangeRateRecord{}, nil
	}
	return records, nil
}

// DeleteRate removes a history record.
func (s *ExchangeRateService) DeleteRate(ctx context.Context, exchangeRateID string) error {
	if err := uuid.Validate(exchangeRateID); err != nil {
		return apperrors.NewNotFoundError("exchange rate " + exchangeRateID)
	}
	if err := s.rateRepo.DeleteExchangeRate(ctx, exchangeRateID); err != nil {
		return fmt.Errorf("failed to delete exchange rate %s: %w", exchangeRateID, err)
	}
	s.LogInfo(ctx, "Exchange rate deleted", slog.String("exchange_rate_id", exchangeRateID))
	return nil
}
