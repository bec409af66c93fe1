package dto

import (
	"time"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitExchangeRateRequest defines the structure for recording a new rate for a currency pair.
type SubmitExchangeRateRequest struct {
	BaseCurrency  string               `json:"baseCurrency" binding:"required"`
	QuoteCurrency string               `json:"quoteCurrency" binding:"required"`
	Rate          decimal.Decimal      `json:"rate"`
	Status        domain.VersionStatus `json:"status" binding:"required"`
	EffectiveFrom time.Time            `json:"effectiveFrom" binding:"required"`
	EffectiveTo   *time.Time           `json:"effectiveTo"`
}

// ExchangeRateHistoryQuery holds the query parameters of a history listing.
type ExchangeRateHistoryQuery struct {
	BaseCurrency  string `form:"base"`
	QuoteCurrency string `form:"quote"`
	Limit         int    `form:"limit,default=50" binding:"min=1,max=500"`
	Offset        int    `form:"offset,default=0" binding:"min=0"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string               `json:"exchangeRateID"`
	BaseCurrency   string               `json:"baseCurrency"`
	QuoteCurrency  string               `json:"quoteCurrency"`
	Rate           decimal.Decimal      `json:"rate"`
	Status         domain.VersionStatus `json:"status"`
	EffectiveFrom  time.Time            `json:"effectiveFrom"`
	EffectiveTo    *time.Time           `json:"effectiveTo,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	CreatedBy      string               `json:"createdBy"`
	LastUpdatedAt  time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy  string               `json:"lastUpdatedBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRateRecord to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRateRecord) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		BaseCurrency:   rate.BaseCurrency,
		QuoteCurrency:  rate.QuoteCurrency,
		Rate:           rate.Rate,
		Status:         rate.Status,
		EffectiveFrom:  rate.EffectiveFrom,
		EffectiveTo:    rate.EffectiveTo,
		CreatedAt:      rate.CreatedAt,
		CreatedBy:      rate.CreatedBy,
		LastUpdatedAt:  rate.LastUpdatedAt,
		LastUpdatedBy:  rate.LastUpdatedBy,
	}
}

// ToListExchangeRateResponse converts history records to ExchangeRateResponse DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRateRecord) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
