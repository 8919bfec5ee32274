// Package valuation converts amounts between present and future value and
// computes the NPV contribution of each milestone.
package valuation

import (
	"math"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/shopspring/decimal"
)

// Amounts holds both representations of one stored amount.
type Amounts struct {
	PV float64
	FV float64
}

// GrowthFactor returns (1+inflation)^(age-currentAge). It is below 1 for ages
// before currentAge.
func GrowthFactor(resolvedAge, currentAge, inflation float64) float64 {
	return math.Pow(1+inflation, resolvedAge-currentAge)
}

// Convert derives the missing representation of amount. A non-finite input or
// result yields zero amounts. No rounding is applied.
func Convert(amount float64, vt domain.ValueType, resolvedAge, currentAge, inflation float64) Amounts {
	if !finite(amount, resolvedAge, currentAge, inflation) {
		return Amounts{}
	}
	g := GrowthFactor(resolvedAge, currentAge, inflation)
	if !finite(g) || g == 0 {
		return Amounts{}
	}

	var out Amounts
	if vt == domain.ValueFV {
		out = Amounts{PV: amount / g, FV: amount}
	} else {
		out = Amounts{PV: amount, FV: amount * g}
	}
	if !finite(out.PV, out.FV) {
		return Amounts{}
	}
	return out
}

// ConvertDecimal is Convert for a stored decimal amount.
func ConvertDecimal(amount decimal.Decimal, vt domain.ValueType, resolvedAge, currentAge, inflation float64) Amounts {
	return Convert(amount.InexactFloat64(), vt, resolvedAge, currentAge, inflation)
}

// Round2 rounds to cents, half away from zero.
func Round2(x float64) float64 {
	if !finite(x) {
		return 0
	}
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

// Rounded returns both amounts rounded to cents.
func (a Amounts) Rounded() Amounts {
	return Amounts{PV: Round2(a.PV), FV: Round2(a.FV)}
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
