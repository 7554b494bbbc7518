// Package core holds the transaction domain model plus the parsing
// helpers that coerce localized spreadsheet values into it.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a localized amount string to a decimal. Every
// character that is not a digit, comma or period is stripped first, so
// currency symbols and spaces ("$500", "1 200") are tolerated.
//
// Comma is the decimal separator: when one is present, any periods are
// thousands separators and are dropped before the comma becomes the
// decimal point. Without a comma the period is the decimal point.
//
//	"1.234,56" -> 1234.56
//	"200,50"   -> 200.5
//	"$500"     -> 500
//	"12.34"    -> 12.34
func ParseAmount(raw string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	if s == "" || s == "." {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
