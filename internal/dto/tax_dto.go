package dto

import (
	"time"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTaxRequest defines the data needed to create a tax with its first version.
type CreateTaxRequest struct {
	TaxName       string          `json:"taxName" binding:"required"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	EffectiveFrom *time.Time      `json:"effectiveFrom"` // Defaults to now
}

// ReviseTaxRequest defines the data of a new tax version.
type ReviseTaxRequest struct {
	TaxName string               `json:"taxName" binding:"required"`
	TaxRate decimal.Decimal      `json:"taxRate"`
	Status  domain.VersionStatus `json:"status"` // Defaults to active
}

// TaxHistoryQuery holds the query parameters of a tax history listing.
type TaxHistoryQuery struct {
	TaxID string `form:"taxId"`
	Limit int    `form:"limit,default=20" binding:"min=1,max=500"`
}

// TaxVersionResponse defines the data returned for one tax version.
type TaxVersionResponse struct {
	TaxVersionID  string               `json:"taxVersionID"`
	TaxID         string               `json:"taxID"`
	TaxName       string               `json:"taxName"`
	TaxRate       decimal.Decimal      `json:"taxRate"`
	Status        domain.VersionStatus `json:"status"`
	EffectiveFrom time.Time            `json:"effectiveFrom"`
	EffectiveTo   *time.Time           `json:"effectiveTo,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
}

// TaxResponse defines the data returned for a tax and the version in force.
type TaxResponse struct {
	TaxID            string              `json:"taxID"`
	CurrentVersionID string              `json:"currentVersionID"`
	CurrentVersion   *TaxVersionResponse `json:"currentVersion,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	CreatedBy        string              `json:"createdBy"`
	LastUpdatedAt    time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy    string              `json:"lastUpdatedBy"`
}

// ToTaxVersionResponse converts a domain.TaxVersion to TaxVersionResponse DTO
func ToTaxVersionResponse(v *domain.TaxVersion) TaxVersionResponse {
	return TaxVersionResponse{
		TaxVersionID:  v.TaxVersionID,
		TaxID:         v.TaxID,
		TaxName:       v.TaxName,
		TaxRate:       v.TaxRate,
		Status:        v.Status,
		EffectiveFrom: v.EffectiveFrom,
		EffectiveTo:   v.EffectiveTo,
		CreatedAt:     v.CreatedAt,
		CreatedBy:     v.CreatedBy,
	}
}

// ToListTaxVersionResponse converts tax versions to TaxVersionResponse DTOs.
func ToListTaxVersionResponse(versions []domain.TaxVersion) []TaxVersionResponse {
	res := make([]TaxVersionResponse, len(versions))
	for i := range versions {
		res[i] = ToTaxVersionResponse(&versions[i])
	}
	return res
}

// ToTaxResponse converts a domain.Tax to TaxResponse DTO
func ToTaxResponse(t *domain.Tax) TaxResponse {
	res := TaxResponse{
		TaxID:            t.TaxID,
		CurrentVersionID: t.CurrentVersionID,
		CreatedAt:        t.CreatedAt,
		CreatedBy:        t.CreatedBy,
		LastUpdatedAt:    t.LastUpdatedAt,
		LastUpdatedBy:    t.LastUpdatedBy,
	}
	if t.CurrentVersion != nil {
		v := ToTaxVersionResponse(t.CurrentVersion)
		res.CurrentVersion = &v
	}
	return res
}

// ToListTaxResponse converts taxes to TaxResponse DTOs.
func ToListTaxResponse(taxes []domain.Tax) []TaxResponse {
	res := make([]TaxResponse, len(taxes))
	for i := range taxes {
		res[i] = ToTaxResponse(&taxes[i])
	}
	return res
}
