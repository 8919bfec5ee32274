package valuation

import (
	"fmt"
	"math"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/timing"
)

// PerpetuityPolicy selects how Expense and Income milestones with a
// Perpetuity disbursement are valued.
type PerpetuityPolicy string

const (
	// PerpetuityZero keeps the historical behaviour: perpetuities contribute nothing.
	PerpetuityZero PerpetuityPolicy = "zero"
	// PerpetuityFormula values a perpetuity as amount / periodic rate, or 0
	// when the rate is 0.
	PerpetuityFormula PerpetuityPolicy = "formula"
)

// ParsePerpetuityPolicy accepts "zero" or "formula". The empty string maps to PerpetuityZero.
func ParsePerpetuityPolicy(s string) (PerpetuityPolicy, error) {
	switch PerpetuityPolicy(s) {
	case "", PerpetuityZero:
		return PerpetuityZero, nil
	case PerpetuityFormula:
		return PerpetuityFormula, nil
	default:
		return "", fmt.Errorf("invalid perpetuity policy %q (want zero or formula)", s)
	}
}

// PeriodicRate converts an annual rate to the rate per occurrence period.
func PeriodicRate(annual float64, o domain.Occurrence) float64 {
	return annual / o.PeriodsPerYear()
}

// AnnuityPV is the present value of n level payments at periodic rate r.
func AnnuityPV(payment, r, n float64) float64 {
	if r == 0 {
		return payment * n
	}
	return payment * (1 - math.Pow(1+r, -n)) / r
}

// Engine values milestones. The zero value uses PerpetuityZero.
type Engine struct {
	CurrentAge    float64
	InflationRate float64
	Perpetuity    PerpetuityPolicy
}

// Item is one milestone's line in a valuation report.
type Item struct {
	MilestoneID string
	Name        string
	Type        domain.MilestoneType
	Age         float64
	Duration    float64
	Amount      Amounts
	Payment     *Amounts
	// NPV is signed: Expense and Liability contributions are negative.
	NPV float64
}

type Report struct {
	Items    []Item
	TotalNPV float64
}

// MilestoneNPV returns the signed NPV contribution of m over n periods. It
// never fails: malformed input contributes 0.
func (e Engine) MilestoneNPV(m *domain.Milestone, n float64) float64 {
	if m == nil || !finite(n) || n < 0 {
		return 0
	}
	amount := m.Amount.InexactFloat64()
	rate := PeriodicRate(m.RateOfReturn, m.Occurrence)
	if !finite(amount, rate) {
		return 0
	}

	var npv float64
	switch {
	case m.Type.IsCashFlow():
		npv = e.cashFlowNPV(m.Disbursement, amount, rate, n)
	case m.Type.IsBalance():
		var payment float64
		if m.Payment != nil {
			payment = m.Payment.InexactFloat64()
		}
		if !finite(payment) {
			return 0
		}
		npv = amount - AnnuityPV(payment, rate, n)
	default:
		return 0
	}

	if !finite(npv) {
		return 0
	}
	if m.Type.ReducesNetPosition() {
		npv = -npv
	}
	return npv
}

func (e Engine) cashFlowNPV(d domain.DisbursementType, amount, rate, n float64) float64 {
	switch d {
	case domain.DisbursementFixedDuration:
		return AnnuityPV(amount, rate, n)
	case domain.DisbursementPerpetuity:
		if e.Perpetuity != PerpetuityFormula || rate == 0 {
			return 0
		}
		return amount / rate
	default:
		return 0
	}
}

// Evaluate values every milestone against its resolution and sums the signed
// contributions. Milestones without a resolution use their literal timing.
func (e Engine) Evaluate(milestones []*domain.Milestone, resolutions []timing.Resolution) Report {
	byID := make(map[string]timing.Resolution, len(resolutions))
	for _, r := range resolutions {
		byID[r.MilestoneID] = r
	}

	report := Report{Items: make([]Item, 0, len(milestones))}
	for _, m := range milestones {
		if m == nil {
			continue
		}
		res, ok := byID[m.ID]
		if !ok {
			res = timing.Resolution{MilestoneID: m.ID, Age: float64(m.AgeAtOccurrence), Duration: m.LiteralDuration()}
		}

		item := Item{
			MilestoneID: m.ID,
			Name:        m.Name,
			Type:        m.Type,
			Age:         res.Age,
			Duration:    res.Duration,
			Amount:      ConvertDecimal(m.Amount, m.AmountValueType, res.Age, e.CurrentAge, e.InflationRate),
			NPV:         e.MilestoneNPV(m, res.Duration),
		}
		if m.Payment != nil {
			p := ConvertDecimal(*m.Payment, m.PaymentValueType, res.Age, e.CurrentAge, e.InflationRate)
			item.Payment = &p
		}
		report.Items = append(report.Items, item)
		report.TotalNPV += item.NPV
	}
	return report
}
