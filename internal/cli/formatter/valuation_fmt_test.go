package formatter

import (
	"testing"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/grouping"
	"github.com/alexanderramin/horizon/internal/timing"
	"github.com/alexanderramin/horizon/internal/valuation"
	"github.com/stretchr/testify/assert"
)

func sampleResponse() *app.ValuationResponse {
	return &app.ValuationResponse{
		CurrentAge:    30,
		InflationRate: 0.02,
		Report: valuation.Report{
			Items: []valuation.Item{
				{MilestoneID: "m1", Name: "Portfolio", Type: domain.MilestoneAsset, Age: 30, Duration: 20,
					Amount: valuation.Amounts{PV: 100000, FV: 100000}, NPV: 167951.63172},
				{MilestoneID: "m2", Name: "Gym", Type: domain.MilestoneExpense, Age: 30, Duration: 12,
					Amount: valuation.Amounts{PV: 100, FV: 100}, NPV: -1125.508},
			},
			TotalNPV: 166826.12,
		},
		Resolutions: []timing.Resolution{{MilestoneID: "m1", Age: 30}, {MilestoneID: "m2", Age: 30}},
		Scenarios:   map[string][]float64{"amount": {35000, 45000}},
	}
}

func TestFormatValuation(t *testing.T) {
	out := stripANSI(FormatValuation(sampleResponse()))

	assert.Contains(t, out, "VALUATION")
	assert.Contains(t, out, "Portfolio")
	assert.Contains(t, out, "167,951.63")
	assert.Contains(t, out, "-1,125.51")
	assert.Contains(t, out, "TOTAL NPV  166,826.12")
	assert.Contains(t, out, "inflation 2.00%")
	assert.Contains(t, out, "amount  35000, 45000")
	assert.NotContains(t, out, "data issue")
}

func TestFormatValuation_IssueHintAndEmpty(t *testing.T) {
	resp := sampleResponse()
	resp.Issues = []timing.Issue{{MilestoneName: "A", Kind: timing.IssueDangling}}
	assert.Contains(t, stripANSI(FormatValuation(resp)), "1 data issue(s)")

	assert.Contains(t, stripANSI(FormatValuation(&app.ValuationResponse{})), "No milestones")
}

func TestFormatForest(t *testing.T) {
	kidA := &domain.Milestone{ID: "a", Name: "First", AgeAtOccurrence: 32}
	resp := &app.ValuationResponse{
		Forest: []grouping.Node{
			{Key: "p1", Type: domain.MilestoneGroup, Name: "Kids", MinAge: 32, MaxAge: 35},
			{Key: "a", Type: domain.MilestoneExpense, Name: "First", Milestone: kidA, ParentID: "p1", Depth: 1},
			{Key: "b", Type: domain.MilestoneExpense, Name: "Second", ParentID: "p1", Depth: 1},
		},
		Resolutions: []timing.Resolution{{MilestoneID: "b", Age: 35}},
	}

	out := stripANSI(FormatForest(resp))
	assert.Contains(t, out, "ages 32-35")
	assert.Contains(t, out, "├─ First")
	assert.Contains(t, out, "age 32", "literal age when unresolved")
	assert.Contains(t, out, "└─ Second")
	assert.Contains(t, out, "age 35")
}

func TestFormatCheck(t *testing.T) {
	assert.Contains(t, stripANSI(FormatCheck(nil, nil, nil)), "No data issues")

	issues := []timing.Issue{
		{MilestoneID: "a", MilestoneName: "A", Kind: timing.IssueCycle, Link: timing.LinkStartAfter, Ref: "B"},
		{MilestoneID: "c", MilestoneName: "C", Kind: timing.IssueDangling, Link: timing.LinkDurationEnd, Ref: "Gone"},
	}
	out := stripANSI(FormatCheck(issues, [][]string{{"a", "b"}}, map[string]string{"a": "A", "b": "B"}))

	assert.Contains(t, out, "CYCLIC_REFERENCE")
	assert.Contains(t, out, `references unknown milestone "Gone"`)
	assert.Contains(t, out, "↻ A → B → A")
}

func TestFormatMilestoneDetail(t *testing.T) {
	after := "Job"
	m := &domain.Milestone{
		ID: "m1", Name: "Retire", Type: domain.MilestoneIncome,
		Disbursement: domain.DisbursementPerpetuity, AmountValueType: domain.ValueFV,
		Occurrence: domain.OccurrenceMonthly, RateOfReturn: 0.04,
		StartAfterMilestone: &after,
		GoalParameters:      []string{"amount"},
	}
	out := stripANSI(FormatMilestoneDetail(m, &timing.Resolution{MilestoneID: "m1", Age: 65, AgeFallback: true}, "Later life"))

	assert.Contains(t, out, "after Job")
	assert.Contains(t, out, "65 (cycle: literal used)")
	assert.Contains(t, out, "4.00%")
	assert.Contains(t, out, "Later life (order 0)")
	assert.Contains(t, out, "GOALS")
}
