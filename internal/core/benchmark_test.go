package core

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

// ============================================================================
// Conversion Benchmarks
// ============================================================================

// BenchmarkParseAmount benchmarks amount parsing.
// Every cost and valuation field of a declaration goes through it.
func BenchmarkParseAmount(b *testing.B) {
	testCases := []string{
		"123",
		"-456.78",
		"$1,234.56",
		"(123.45)",      // Accounting negative
		"1,234,567.89",  // Thousands separators
		"  999.99  ",    // Whitespace
		"\u20ac1234.56", // Euro
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			ParseAmount(tc)
		}
	}
}

// BenchmarkCleanCell benchmarks cell cleanup during tariff import.
func BenchmarkCleanCell(b *testing.B) {
	testCases := []string{
		"simple",
		"  whitespace  ",
		"\ufeffbom prefixed",
		`="0402.10"`,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			CleanCell(tc)
		}
	}
}

// ============================================================================
// Allocation Benchmarks
// ============================================================================

func benchmarkAllocateProportional(b *testing.B, n int) {
	weights := make([]decimal.Decimal, n)
	for i := range weights {
		weights[i] = decimal.NewFromInt(int64(i%7 + 1))
	}
	total := decimal.RequireFromString("1234.57")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		AllocateProportional(total, weights)
	}
}

func BenchmarkAllocateProportional_10(b *testing.B)   { benchmarkAllocateProportional(b, 10) }
func BenchmarkAllocateProportional_1000(b *testing.B) { benchmarkAllocateProportional(b, 1000) }

func BenchmarkAllocateEqually(b *testing.B) {
	total := decimal.RequireFromString("100.00")
	for i := 0; i < b.N; i++ {
		AllocateEqually(total, 3)
	}
}

// ============================================================================
// Tariff Import Benchmarks
// ============================================================================

// BenchmarkParseTariffCSV benchmarks parsing a 1000-row tariff export.
func BenchmarkParseTariffCSV(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("\ufeffCode,Description,Duty Rate,Unit\n")
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&sb, "%04d.%02d,Item %d,22%%,kg\n", i, i%100, i)
	}
	data := sb.String()

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := ParseTariffCSV(strings.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}
