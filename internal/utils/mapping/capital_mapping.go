package mapping

import (
	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/SscSPs/pos_backoffice/internal/models"
)

// ToModelCapital converts a domain Capital to a model Capital
func ToModelCapital(d domain.Capital) models.Capital {
	return models.Capital{
		CapitalID:       d.CapitalID,
		CurrencyCode:    d.CurrencyCode,
		InitialAmount:   d.InitialAmount,
		RemainingAmount: d.RemainingAmount,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCapital converts a model Capital to a domain Capital
func ToDomainCapital(m models.Capital) domain.Capital {
	return domain.Capital{
		CapitalID:       m.CapitalID,
		CurrencyCode:    m.CurrencyCode,
		InitialAmount:   m.InitialAmount,
		RemainingAmount: m.RemainingAmount,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
