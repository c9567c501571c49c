package core

// money.go implements cent-exact allocation of shipment-level charges.
//
// Both allocators work in integer cents so the shares always add up to the
// rounded total, whatever rounding happened upstream. Leftover cents from
// flooring are handed out by the largest-remainder method; ties go to the
// earliest share.

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ZeroAmount is the formatted zero share.
const ZeroAmount = "0.00"

// AllocateProportional splits total across len(weights) shares in proportion
// to the weights. Negative weights count as zero. When the rounded total or
// the weight sum is zero, every share is "0.00". A negative total is split by
// magnitude and every share carries its sign.
func AllocateProportional(total decimal.Decimal, weights []decimal.Decimal) []string {
	shares := make([]string, len(weights))
	totalCents := toCents(total)
	negative := totalCents.IsNegative()
	totalCents = totalCents.Abs()

	sum := decimal.Zero
	clean := make([]decimal.Decimal, len(weights))
	for i, w := range weights {
		if w.IsPositive() {
			clean[i] = w
			sum = sum.Add(w)
		}
	}

	if totalCents.IsZero() || sum.IsZero() {
		for i := range shares {
			shares[i] = ZeroAmount
		}
		return shares
	}

	// share_i = totalCents * w_i / sum, split exactly into floor and remainder.
	// All remainders share the denominator, so comparing them directly ranks
	// the fractional parts.
	cents := make([]decimal.Decimal, len(weights))
	remainders := make([]decimal.Decimal, len(weights))
	allocated := decimal.Zero
	for i, w := range clean {
		q, r := totalCents.Mul(w).QuoRem(sum, 0)
		cents[i] = q
		remainders[i] = r
		allocated = allocated.Add(q)
	}

	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].GreaterThan(remainders[order[b]])
	})

	leftover := totalCents.Sub(allocated).IntPart()
	for k := int64(0); k < leftover && int(k) < len(order); k++ {
		i := order[k]
		cents[i] = cents[i].Add(decimal.NewFromInt(1))
	}

	for i, c := range cents {
		if negative {
			c = c.Neg()
		}
		shares[i] = formatCents(c.IntPart())
	}
	return shares
}

// AllocateEqually splits total into count shares that differ by at most one
// cent. The first total%count shares carry the extra cent, which is negative
// when total is. A count of zero yields an empty slice.
func AllocateEqually(total decimal.Decimal, count int) []string {
	if count <= 0 {
		return []string{}
	}

	shares := make([]string, count)
	totalCents := toCents(total).IntPart()
	sign := int64(1)
	if totalCents < 0 {
		sign, totalCents = -1, -totalCents
	}

	base := totalCents / int64(count)
	extra := totalCents % int64(count)
	for i := range shares {
		c := base
		if int64(i) < extra {
			c++
		}
		shares[i] = formatCents(sign * c)
	}
	return shares
}

// SumShares adds formatted shares back up. Malformed shares count as zero.
func SumShares(shares []string) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(ParseAmount(s))
	}
	return total
}

// toCents rounds an amount to two places and returns it in whole cents.
func toCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2).Shift(2).Truncate(0)
}

func formatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
