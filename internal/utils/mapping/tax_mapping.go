package mapping

import (
	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/SscSPs/pos_backoffice/internal/models"
)

// ToModelTaxVersion converts a domain TaxVersion to a model TaxVersion
func ToModelTaxVersion(d domain.TaxVersion) models.TaxVersion {
	return models.TaxVersion{
		TaxVersionID:  d.TaxVersionID,
		TaxID:         d.TaxID,
		TaxName:       d.TaxName,
		TaxRate:       d.TaxRate,
		Status:        string(d.Status),
		EffectiveFrom: d.EffectiveFrom,
		EffectiveTo:   d.EffectiveTo,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTaxVersion converts a model TaxVersion to a domain TaxVersion
func ToDomainTaxVersion(m models.TaxVersion) domain.TaxVersion {
	return domain.TaxVersion{
		TaxVersionID:  m.TaxVersionID,
		TaxID:         m.TaxID,
		TaxName:       m.TaxName,
		TaxRate:       m.TaxRate,
		Status:        domain.VersionStatus(m.Status),
		EffectiveFrom: m.EffectiveFrom,
		EffectiveTo:   m.EffectiveTo,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTaxVersionSlice converts model versions to domain versions
func ToDomainTaxVersionSlice(ms []models.TaxVersion) []domain.TaxVersion {
	ds := make([]domain.TaxVersion, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTaxVersion(m)
	}
	return ds
}

// ToModelTax converts a domain Tax to a model Tax
func ToModelTax(d domain.Tax) models.Tax {
	return models.Tax{
		TaxID:            d.TaxID,
		CurrentVersionID: d.CurrentVersionID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTax converts a model Tax and its optional current version to a domain Tax
func ToDomainTax(m models.Tax, current *models.TaxVersion) domain.Tax {
	t := domain.Tax{
		TaxID:            m.TaxID,
		CurrentVersionID: m.CurrentVersionID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if current != nil {
		v := ToDomainTaxVersion(*current)
		t.CurrentVersion = &v
	}
	return t
}
