// Package money converts between user-entered decimal amount strings and
// the integer minor-unit representation stored in the database (100 minor
// units = 1 whole currency unit, avoiding floating-point rounding).
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmountMinor parses a user-entered decimal string into minor units.
// Thousands separators (",") are stripped; the integer part counts whole
// currency units; the first two digits of the fractional part, right-padded
// with zeros, count minor units. A blank or unparseable string yields
// ok=false, never zero: the caller must not persist a transaction in that
// case.
//
//	"12.5"     -> 1250
//	"12"       -> 1200
//	"1,234.56" -> 123456
//	"" / "abc" -> ok=false
func ParseAmountMinor(s string) (int64, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, false
	}

	normalized := strings.ReplaceAll(trimmed, ",", "")
	parts := strings.Split(normalized, ".")
	if len(parts) > 2 {
		return 0, false
	}

	whole, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, false
	}

	var minor int64
	if len(parts) == 2 {
		frac := parts[1]
		if len(frac) < 2 {
			frac = frac + strings.Repeat("0", 2-len(frac))
		}
		frac = frac[:2]
		minor, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, false
		}
	}

	return whole*100 + minor, true
}

// FormatMinor renders minor units as a decimal string with exactly two
// fractional digits, e.g. 1250 -> "12.50", -305 -> "-3.05".
func FormatMinor(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}
