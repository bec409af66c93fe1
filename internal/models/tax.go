package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tax is a row of taxes, the pointer to a tax's current version.
type Tax struct {
	TaxID            string `db:"tax_id"`
	CurrentVersionID string `db:"current_version_id"`
	AuditFields
}

// TaxVersion is a row of tax_versions.
type TaxVersion struct {
	TaxVersionID  string          `db:"tax_version_id"`
	TaxID         string          `db:"tax_id"`
	TaxName       string          `db:"tax_name"`
	TaxRate       decimal.Decimal `db:"tax_rate"`
	Status        string          `db:"status"`
	EffectiveFrom time.Time       `db:"effective_from"`
	EffectiveTo   *time.Time      `db:"effective_to"` // Nullable
	AuditFields
}
