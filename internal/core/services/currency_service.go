package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/pos_backoffice/internal/apperrors"
	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pos_backoffice/internal/dto"
	"github.com/SscSPs/pos_backoffice/internal/platform/clock"
	"github.com/patrickmn/go-cache"
)

const (
	currencyCacheKeyPrefix   = "currency:"
	currencyListCacheKey     = "currencies:all"
	defaultCurrencyPrecision = 2
)

// CurrencyService serves currency reference data, caching lookups in memory.
type CurrencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	cache        *cache.Cache
	clock        clock.Clock
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

// NewCurrencyService creates a CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, opts ...ServiceOption) *CurrencyService {
	o := applyServiceOptions(opts)
	return &CurrencyService{
		currencyRepo: currencyRepo,
		cache:        cache.New(o.currencyCacheTTL, 2*o.currencyCacheTTL),
		clock:        o.clock,
	}
}

// CreateCurrency persists a new currency and refreshes the cache.
func (s *CurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	fields := map[string]string{}
	code, err := domain.NormalizeCurrencyCode(req.CurrencyCode)
	if err != nil {
		fields["currencyCode"] = err.Error()
	}
	if strings.TrimSpace(req.Symbol) == "" {
		fields["symbol"] = "is required"
	}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "is required"
	}
	precision := defaultCurrencyPrecision
	if req.Precision != nil {
		precision = *req.Precision
		if precision < 0 || precision > 6 {
			fields["precision"] = "must be between 0 and 6"
		}
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields)
	}

	now := s.clock.Now()
	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       strings.TrimSpace(req.Symbol),
		Name:         strings.TrimSpace(req.Name),
		Precision:    precision,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to create currency %s: %w", code, err)
	}

	s.cache.Delete(currencyListCacheKey)
	s.cache.Set(currencyCacheKeyPrefix+code, currency, cache.DefaultExpiration)
	s.LogInfo(ctx, "Currency created", slog.String("currency_code", code))
	return &currency, nil
}

// GetCurrencyByCode retrieves a currency, serving repeated lookups from the cache.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code, err := domain.NormalizeCurrencyCode(currencyCode)
	if err != nil {
		return nil, apperrors.NewValidationError(map[string]string{"currencyCode": err.Error()})
	}

	if cached, found := s.cache.Get(currencyCacheKeyPrefix + code); found {
		c := cached.(domain.Currency)
		return &c, nil
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency %s: %w", code, err)
	}
	s.cache.Set(currencyCacheKeyPrefix+code, *currency, cache.DefaultExpiration)
	return currency, nil
}

// ListCurrencies retrieves all currencies.
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	if cached, found := s.cache.Get(currencyListCacheKey); found {
		return copyCurrencies(cached.([]domain.Currency)), nil
	}

	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		currencies = []domain.Currency{}
	}
	s.cache.Set(currencyListCacheKey, currencies, cache.DefaultExpiration)
	return copyCurrencies(currencies), nil
}

func copyCurrencies(src []domain.Currency) []domain.Currency {
	dst := make([]domain.Currency, len(src))
	copy(dst, src)
	return dst
}
