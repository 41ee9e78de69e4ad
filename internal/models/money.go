package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a spreadsheet price field into a decimal amount.
// Source data uses comma as the fractional separator ("12,50"); the comma is
// normalized to a period before conversion. Missing or unparsable values
// resolve to zero so a spreadsheet typo never breaks rendering.
func ParsePrice(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	raw = strings.ReplaceAll(raw, ",", ".")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatPrice renders an amount with exactly two fractional digits and the
// comma separator used throughout the storefront ("37,50").
func FormatPrice(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
