package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/valuation"
)

// FormatValuation renders the per-milestone valuation table, the total and,
// when present, the scenario catalogue and an issue hint.
func FormatValuation(resp *app.ValuationResponse) string {
	if len(resp.Report.Items) == 0 {
		return Dim("No milestones. Add one with 'horizon milestone add'.")
	}

	headers := []string{"NAME", "TYPE", "AGE", "DURATION", "PV", "FV", "NPV"}
	rows := make([][]string, 0, len(resp.Report.Items))
	for _, it := range resp.Report.Items {
		rows = append(rows, []string{
			Bold(it.Name),
			TypeBadge(it.Type),
			FormatAge(it.Age),
			itemDuration(it),
			FormatMoney(it.Amount.PV),
			FormatMoney(it.Amount.FV),
			Signed(it.NPV),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows, 4, 5, 6))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleHeader.Render("TOTAL NPV"), Signed(resp.Report.TotalNPV)))
	b.WriteString(Dim(fmt.Sprintf("current age %d, inflation %.2f%%", resp.CurrentAge, resp.InflationRate*100)))

	if sc := FormatScenarios(resp.Scenarios); sc != "" {
		b.WriteString("\n\n" + sc)
	}
	if n := len(resp.Issues); n > 0 {
		b.WriteString("\n\n" + StyleYellow.Render(fmt.Sprintf("%d data issue(s); run 'horizon check' for details", n)))
	}
	return RenderBox("Valuation", b.String())
}

// FormatScenarios renders each field's alternative values, or "" when there
// are none.
func FormatScenarios(catalogue map[string][]float64) string {
	if len(catalogue) == 0 {
		return ""
	}
	fields := make([]string, 0, len(catalogue))
	for f := range catalogue {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString(Header("Scenarios"))
	for _, f := range fields {
		b.WriteString(fmt.Sprintf("\n%s  %s", StyleBlue.Render(f), joinFloats(catalogue[f])))
	}
	return b.String()
}

func itemDuration(it valuation.Item) string {
	if it.Duration == 0 {
		return Dim("--")
	}
	return FormatAge(valuation.Round2(it.Duration))
}

// FormatForest renders the display forest as a tree with resolved ages.
func FormatForest(resp *app.ValuationResponse) string {
	ages := make(map[string]float64, len(resp.Resolutions))
	for _, r := range resp.Resolutions {
		ages[r.MilestoneID] = r.Age
	}
	items := make([]TreeItem, 0, len(resp.Forest))
	for i, n := range resp.Forest {
		item := TreeItem{Title: n.Name, Badge: TypeBadge(n.Type)}
		if n.IsGroup() {
			item.Title = Bold(n.Name)
			item.Detail = Dim(fmt.Sprintf("ages %d-%d", n.MinAge, n.MaxAge))
		} else {
			age, ok := ages[n.Key]
			if !ok && n.Milestone != nil {
				age = float64(n.Milestone.AgeAtOccurrence)
			}
			item.Detail = Dim("age " + FormatAge(age))
		}
		if n.ParentID != "" {
			item.Level = 1
			item.IsLast = i == len(resp.Forest)-1 || resp.Forest[i+1].ParentID != n.ParentID
		}
		items = append(items, item)
	}
	return RenderTree(items)
}

// typeOrder is the legend order of the timeline.
var typeOrder = []domain.MilestoneType{
	domain.MilestoneIncome,
	domain.MilestoneExpense,
	domain.MilestoneAsset,
	domain.MilestoneLiability,
	domain.MilestoneGroup,
}
