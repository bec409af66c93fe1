package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxVersion is one version of a named tax rate. Consecutive versions of the
// same tax share a boundary timestamp: v1.EffectiveTo == v2.EffectiveFrom.
type TaxVersion struct {
	TaxVersionID  string          `json:"taxVersionID"`
	TaxID         string          `json:"taxID"`
	TaxName       string          `json:"taxName"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	Status        VersionStatus   `json:"status"`
	EffectiveFrom time.Time       `json:"effectiveFrom"`
	EffectiveTo   *time.Time      `json:"effectiveTo,omitempty"`
	AuditFields
}

// Close ends the version at ts.
func (v *TaxVersion) Close(ts time.Time) {
	v.EffectiveTo = &ts
	v.Status = StatusInactive
}

// Tax is the pointer to the version of a logical tax currently in force.
type Tax struct {
	TaxID            string      `json:"taxID"`
	CurrentVersionID string      `json:"currentVersionID"`
	CurrentVersion   *TaxVersion `json:"currentVersion,omitempty"`
	AuditFields
}
