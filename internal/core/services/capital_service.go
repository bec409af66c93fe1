package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/pos_backoffice/internal/apperrors"
	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pos_backoffice/internal/dto"
	"github.com/SscSPs/pos_backoffice/internal/platform/clock"
	"github.com/SscSPs/pos_backoffice/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CapitalService manages per-currency capital balances.
type CapitalService struct {
	BaseService
	capitalRepo portsrepo.CapitalRepositoryWithTx
	currencySvc portssvc.CurrencyReaderSvc
	tx          txRunner
	clock       clock.Clock
}

var _ portssvc.CapitalSvcFacade = (*CapitalService)(nil)

// NewCapitalService creates a new CapitalService.
func NewCapitalService(capitalRepo portsrepo.CapitalRepositoryWithTx, currencySvc portssvc.CurrencyReaderSvc, opts ...ServiceOption) *CapitalService {
	o := applyServiceOptions(opts)
	return &CapitalService{
		capitalRepo: capitalRepo,
		currencySvc: currencySvc,
		tx:          newTxRunner(capitalRepo, o.maxRetries),
		clock:       o.clock,
	}
}

func normalizeCapitalCurrency(code string) (string, error) {
	normalized, err := domain.NormalizeCurrencyCode(code)
	if err != nil {
		return "", apperrors.NewValidationError(map[string]string{"currencyCode": err.Error()})
	}
	return normalized, nil
}

// GetBalance returns the remaining capital of a currency.
func (s *CapitalService) GetBalance(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	code, err := normalizeCapitalCurrency(currencyCode)
	if err != nil {
		return decimal.Zero, err
	}
	capital, err := s.capitalRepo.FindCapitalByCurrency(ctx, code)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balance for %s: %w", code, err)
	}
	return capital.RemainingAmount, nil
}

// ListCapitals returns every capital balance.
func (s *CapitalService) ListCapitals(ctx context.Context) ([]domain.Capital, error) {
	capitals, err := s.capitalRepo.ListCapitals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list capitals: %w", err)
	}
	if capitals == nil {
		return []domain.Capital{}, nil
	}
	return capitals, nil
}

// Reconcile compares the stored remaining balance with the expense lines posted against the currency.
func (s *CapitalService) Reconcile(ctx context.Context, currencyCode string) (*domain.CapitalReconciliation, error) {
	code, err := normalizeCapitalCurrency(currencyCode)
	if err != nil {
		return nil, err
	}
	capital, err := s.capitalRepo.FindCapitalByCurrency(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile %s: %w", code, err)
	}
	posted, err := s.capitalRepo.SumPostedAmounts(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to sum posted amounts for %s: %w", code, err)
	}

	result := capital.Reconcile(posted)
	if !result.Balanced {
		s.GetLogger(ctx).Warn("Capital balance does not match posted expenses",
			slog.String("currency_code", code),
			slog.String("remaining", result.RemainingAmount.String()),
			slog.String("expected", result.ExpectedRemaining.String()))
	}
	return &result, nil
}

// FormatAmount renders an amount for display. Unknown currencies are formatted with two decimals.
func (s *CapitalService) FormatAmount(ctx context.Context, amount decimal.Decimal, currencyCode string) string {
	currency, err := s.currencySvc.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		s.LogDebug(ctx, "Formatting amount without currency metadata",
			slog.String("currency_code", currencyCode),
			slog.String("error", err.Error()))
		return utils.FormatMoney(amount, domain.Currency{CurrencyCode: currencyCode, Precision: defaultCurrencyPrecision})
	}
	return utils.FormatMoney(amount, *currency)
}

// CreateCapital opens the capital balance of a currency with remaining = initial.
func (s *CapitalService) CreateCapital(ctx context.Context, req dto.CreateCapitalRequest, userID string) (*domain.Capital, error) {
	fields := map[string]string{}
	code, err := domain.NormalizeCurrencyCode(req.CurrencyCode)
	if err != nil {
		fields["currencyCode"] = err.Error()
	}
	if req.InitialAmount.IsNegative() {
		fields["initialAmount"] = "must not be negative"
	} else if !domain.FitsLedgerScale(req.InitialAmount) {
		fields["initialAmount"] = domain.ScaleMessage
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields)
	}

	if _, err := s.currencySvc.GetCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(map[string]string{"currencyCode": "unknown currency " + code})
		}
		return nil, fmt.Errorf("failed to validate currency %s: %w", code, err)
	}

	now := s.clock.Now()
	capital := domain.Capital{
		CapitalID:       uuid.NewString(),
		CurrencyCode:    code,
		InitialAmount:   req.InitialAmount,
		RemainingAmount: req.InitialAmount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.capitalRepo.SaveCapital(ctx, capital); err != nil {
		s.LogError(ctx, err, "Failed to create capital", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to create capital for %s: %w", code, err)
	}

	s.LogInfo(ctx, "Capital created",
		slog.String("currency_code", code),
		slog.String("initial_amount", capital.InitialAmount.String()))
	return &capital, nil
}

// AdjustCapital sets a new initial amount. The spent portion is carried over, so the
// remaining balance moves by the same delta as the initial amount.
func (s *CapitalService) AdjustCapital(ctx context.Context, currencyCode string, req dto.AdjustCapitalRequest, userID string) (*domain.Capital, error) {
	code, err := normalizeCapitalCurrency(currencyCode)
	if err != nil {
		return nil, err
	}
	if req.InitialAmount.IsNegative() {
		return nil, apperrors.NewValidationError(map[string]string{"initialAmount": "must not be negative"})
	}
	if !domain.FitsLedgerScale(req.InitialAmount) {
		return nil, apperrors.NewValidationError(map[string]string{"initialAmount": domain.ScaleMessage})
	}

	var adjusted domain.Capital
	err = s.tx.run(ctx, "adjust capital", func(tx pgx.Tx) error {
		capital, err := s.capitalRepo.FindCapitalByCurrencyForUpdate(ctx, tx, code)
		if err != nil {
			return err
		}

		remaining := req.InitialAmount.Sub(capital.Spent())
		if remaining.IsNegative() {
			return apperrors.NewValidationError(map[string]string{
				"initialAmount": fmt.Sprintf("must cover the %s already spent in %s", capital.Spent().String(), code),
			})
		}

		capital.InitialAmount = req.InitialAmount
		capital.RemainingAmount = remaining
		capital.LastUpdatedAt = s.clock.Now()
		capital.LastUpdatedBy = userID
		if err := s.capitalRepo.UpdateCapitalInTx(ctx, tx, *capital); err != nil {
			return err
		}
		adjusted = *capital
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to adjust capital", slog.String("currency_code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Capital adjusted",
		slog.String("currency_code", code),
		slog.String("initial_amount", adjusted.InitialAmount.String()),
		slog.String("remaining_amount", adjusted.RemainingAmount.String()))
	return &adjusted, nil
}

// DeleteCapital removes the capital balance of a currency.
func (s *CapitalService) DeleteCapital(ctx context.Context, currencyCode string) error {
	code, err := normalizeCapitalCurrency(currencyCode)
	if err != nil {
		return err
	}
	if err := s.capitalRepo.DeleteCapital(ctx, code); err != nil {
		return fmt.Errorf("failed to delete capital for %s: %w", code, err)
	}
	s.LogInfo(ctx, "Capital deleted", slog.String("currency_code", code))
	return nil
}
