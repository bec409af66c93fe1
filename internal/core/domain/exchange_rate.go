package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyPair identifies the base/quote currencies of a rate history.
type CurrencyPair struct {
	Base  string `json:"baseCurrency"`
	Quote string `json:"quoteCurrency"`
}

// NewCurrencyPair normalizes both codes and rejects identical currencies.
func NewCurrencyPair(base, quote string) (CurrencyPair, error) {
	b, err := NormalizeCurrencyCode(base)
	if err != nil {
		return CurrencyPair{}, err
	}
	q, err := NormalizeCurrencyCode(quote)
	if err != nil {
		return CurrencyPair{}, err
	}
	if b == q {
		return CurrencyPair{}, errors.New("base and quote currencies cannot be the same")
	}
	return CurrencyPair{Base: b, Quote: q}, nil
}

func (p CurrencyPair) String() string { return p.Base + "/" + p.Quote }

// LockKey names the pair for pair-scoped advisory locking.
func (p CurrencyPair) LockKey() string { return "exchange_rate:" + p.String() }

// ExchangeRateRecord is one version of a conversion rate for a currency pair.
// Records are append-only; superseding closes the previous active record.
type ExchangeRateRecord struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	BaseCurrency   string          `json:"baseCurrency"`
	QuoteCurrency  string          `json:"quoteCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	Status         VersionStatus   `json:"status"`
	EffectiveFrom  time.Time       `json:"effectiveFrom"`
	EffectiveTo    *time.Time      `json:"effectiveTo,omitempty"`
	AuditFields
}

// Pair returns the record's currency pair.
func (r ExchangeRateRecord) Pair() CurrencyPair {
	return CurrencyPair{Base: r.BaseCurrency, Quote: r.QuoteCurrency}
}

// IsOpen reports whether the record is active with no end date.
func (r ExchangeRateRecord) IsOpen() bool {
	return r.Status == StatusActive && r.EffectiveTo == nil
}

// CurrentRatePointer references the authoritative record for one currency pair.
type CurrentRatePointer struct {
	BaseCurrency   string    `json:"baseCurrency"`
	QuoteCurrency  string    `json:"quoteCurrency"`
	ExchangeRateID string    `json:"exchangeRateID"`
	UpdatedAt      time.Time `json:"updatedAt"`
	UpdatedBy      string    `json:"updatedBy"`
}

// ExchangeRateFilter narrows a rate history listing. Empty codes match any currency.
type ExchangeRateFilter struct {
	BaseCurrency  string
	QuoteCurrency string
	Limit         int
	Offset        int
}
