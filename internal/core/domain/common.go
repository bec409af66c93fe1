package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerScale is the number of decimal places stored for every amount and rate.
const LedgerScale = 6

// ScaleMessage is the field error reported for values finer than LedgerScale.
var ScaleMessage = fmt.Sprintf("must have at most %d decimal places", LedgerScale)

// FitsLedgerScale reports whether d is stored without rounding.
func FitsLedgerScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(LedgerScale))
}

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// VersionStatus marks whether a versioned record (rate or tax) is the one in force.
type VersionStatus string

const (
	StatusActive   VersionStatus = "active"
	StatusInactive VersionStatus = "inactive"
)

// IsValid reports whether s is one of the known statuses.
func (s VersionStatus) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}
