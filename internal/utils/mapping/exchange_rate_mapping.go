package mapping

import (
	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	"github.com/SscSPs/pos_backoffice/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRateRecord to a model ExchangeRateHistory
func ToModelExchangeRate(d domain.ExchangeRateRecord) models.ExchangeRateHistory {
	return models.ExchangeRateHistory{
		ExchangeRateID: d.ExchangeRateID,
		BaseCurrency:   d.BaseCurrency,
		QuoteCurrency:  d.QuoteCurrency,
		Rate:           d.Rate,
		Status:         string(d.Status),
		EffectiveFrom:  d.EffectiveFrom,
		EffectiveTo:    d.EffectiveTo,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRateHistory to a domain ExchangeRateRecord
func ToDomainExchangeRate(m models.ExchangeRateHistory) domain.ExchangeRateRecord {
	return domain.ExchangeRateRecord{
		ExchangeRateID: m.ExchangeRateID,
		BaseCurrency:   m.BaseCurrency,
		QuoteCurrency:  m.QuoteCurrency,
		Rate:           m.Rate,
		Status:         domain.VersionStatus(m.Status),
		EffectiveFrom:  m.EffectiveFrom,
		EffectiveTo:    m.EffectiveTo,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExchangeRateSlice converts model rows to domain records
func ToDomainExchangeRateSlice(ms []models.ExchangeRateHistory) []domain.ExchangeRateRecord {
	ds := make([]domain.ExchangeRateRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExchangeRate(m)
	}
	return ds
}
