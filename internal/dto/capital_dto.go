package dto

import (
	"time"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCapitalRequest defines the data needed to open a capital balance for a currency.
type CreateCapitalRequest struct {
	CurrencyCode  string          `json:"currencyCode" binding:"required"`
	InitialAmount decimal.Decimal `json:"initialAmount"`
}

// AdjustCapitalRequest defines a new initial amount for an existing capital balance.
type AdjustCapitalRequest struct {
	InitialAmount decimal.Decimal `json:"initialAmount"`
}

// CapitalResponse defines the data returned for a capital balance.
type CapitalResponse struct {
	CapitalID          string          `json:"capitalID"`
	CurrencyCode       string          `json:"currencyCode"`
	InitialAmount      decimal.Decimal `json:"initialAmount"`
	RemainingAmount    decimal.Decimal `json:"remainingAmount"`
	FormattedRemaining string          `json:"formattedRemaining"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy      string          `json:"lastUpdatedBy"`
}

// BalanceResponse defines the data returned by a balance lookup.
type BalanceResponse struct {
	CurrencyCode       string          `json:"currencyCode"`
	RemainingAmount    decimal.Decimal `json:"remainingAmount"`
	FormattedRemaining string          `json:"formattedRemaining"`
}

// ToCapitalResponse converts a domain.Capital to CapitalResponse DTO.
// formatted is the display form of the remaining amount.
func ToCapitalResponse(c *domain.Capital, formatted string) CapitalResponse {
	return CapitalResponse{
		CapitalID:          c.CapitalID,
		CurrencyCode:       c.CurrencyCode,
		InitialAmount:      c.InitialAmount,
		RemainingAmount:    c.RemainingAmount,
		FormattedRemaining: formatted,
		CreatedAt:          c.CreatedAt,
		CreatedBy:          c.CreatedBy,
		LastUpdatedAt:      c.LastUpdatedAt,
		LastUpdatedBy:      c.LastUpdatedBy,
	}
}
