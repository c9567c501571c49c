package core

// convert.go provides conversion helpers for loosely formatted inbound values.
//
// Declarations are typed in by brokers or exported from spreadsheets, so
// amounts arrive with currency symbols, thousands separators and accounting
// parentheses, and CSV cells carry Excel artifacts. Every helper here is
// total: bad input produces a zero value, never an error.

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// HeaderIndex maps column names (lowercase) to their position in a CSV row.
type HeaderIndex map[string]int

// ParseAmount converts a string to a decimal amount.
// Handles currency symbols, thousands separators, and accounting format
// (parentheses for negative). Returns zero for empty or invalid input.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "\u20ac", "") // Euro
	s = strings.ReplaceAll(s, "\u00a3", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NormalizeTransportMode trims and upper-cases a transport mode so that
// "sea", " Sea " and "SEA" compare equal.
func NormalizeTransportMode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// normalizeTariffCode reduces a tariff code to its digits and letters so
// "8471.30.00", "8471 30 00" and "84713000" share a lookup key.
func normalizeTariffCode(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range strings.ToUpper(code) {
		if (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MakeHeaderIndex creates a HeaderIndex from a CSV header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(strings.TrimPrefix(h, "\ufeff")))
		idx[key] = i
	}
	return idx
}

// Cell returns the cleaned value of the first matching column, or "".
func (h HeaderIndex) Cell(row []string, names ...string) string {
	for _, name := range names {
		i, ok := h[strings.ToLower(name)]
		if !ok || i >= len(row) {
			continue
		}
		return CleanCell(row[i])
	}
	return ""
}

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}
