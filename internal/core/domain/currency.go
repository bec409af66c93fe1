package domain

import (
	"fmt"
	"strings"
)

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "MMK")
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"` // Number of minor-unit digits used for display
	AuditFields
}

// NormalizeCurrencyCode trims and upper-cases code and checks that it is three ASCII letters.
func NormalizeCurrencyCode(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 3 {
		return "", fmt.Errorf("currency code %q must be 3 letters", code)
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("currency code %q must be 3 letters", code)
		}
	}
	return c, nil
}
