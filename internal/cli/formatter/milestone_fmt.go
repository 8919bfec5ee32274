package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/timing"
)

// FormatMilestoneList renders stored milestones in a boxed table. parents
// maps parent ids to names for the GROUP column.
func FormatMilestoneList(milestones []*domain.Milestone, parents map[string]string) string {
	headers := []string{"ID", "NAME", "TYPE", "AGE", "AMOUNT", "DURATION", "GROUP"}
	rows := make([][]string, 0, len(milestones))
	for _, m := range milestones {
		group := Dim("--")
		if pid := m.ParentID(); pid != "" {
			group = domain.CoalesceStr(parents[pid], TruncID(pid))
		}
		rows = append(rows, []string{
			Dim(TruncID(m.ID)),
			Bold(m.Name),
			TypeBadge(m.Type),
			ageCell(m),
			FormatDecimal(m.Amount) + " " + Dim(string(m.AmountValueType)),
			durationCell(m),
			group,
		})
	}
	return RenderBox("Milestones", RenderTable(headers, rows, 4))
}

// FormatMilestoneDetail renders every field of one milestone. res is the
// resolved timing, or nil when it is not known.
func FormatMilestoneDetail(m *domain.Milestone, res *timing.Resolution, parentName string) string {
	var b strings.Builder
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-12s", label)), value))
	}

	b.WriteString(Bold(m.Name) + "  " + TypeBadge(m.Type) + "\n\n")
	field("ID", m.ID)
	field("AGE", ageCell(m))
	if res != nil {
		resolved := FormatAge(res.Age)
		if res.AgeFallback {
			resolved += StyleYellow.Render(" (cycle: literal used)")
		}
		field("RESOLVED", resolved)
	}
	field("DISBURSE", string(m.Disbursement))
	field("AMOUNT", FormatDecimal(m.Amount)+" "+Dim(string(m.AmountValueType)))
	if m.Payment != nil {
		field("PAYMENT", FormatDecimal(*m.Payment)+" "+Dim(string(m.PaymentValueType)))
	}
	field("OCCURRENCE", string(m.Occurrence))
	field("DURATION", durationCell(m))
	if res != nil && m.HasDurationLink() {
		field("", "resolved "+FormatDuration(res.Duration, m.Occurrence))
	}
	field("RATE", fmt.Sprintf("%.2f%%", m.RateOfReturn*100))
	if parentName != "" {
		field("GROUP", fmt.Sprintf("%s (order %d)", parentName, m.Order))
	}
	if len(m.GoalParameters) > 0 {
		field("GOALS", strings.Join(m.GoalParameters, ", "))
	}
	if len(m.ScenarioParameterValues) > 0 {
		fields := make([]string, 0, len(m.ScenarioParameterValues))
		for f := range m.ScenarioParameterValues {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			field("SCENARIO", f+": "+joinFloats(m.ScenarioParameterValues[f]))
		}
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

// FormatParentList renders parent milestones with their child counts.
func FormatParentList(parents []*domain.ParentMilestone, children map[string]int) string {
	headers := []string{"ID", "NAME", "AGES", "CHILDREN"}
	rows := make([][]string, 0, len(parents))
	for _, p := range parents {
		ages := fmt.Sprintf("%d-%d", p.MinAge, p.MaxAge)
		if p.IsPoint() {
			ages = fmt.Sprintf("%d", p.MinAge)
		}
		rows = append(rows, []string{Dim(TruncID(p.ID)), Bold(p.Name), ages, fmt.Sprintf("%d", children[p.ID])})
	}
	return RenderBox("Groups", RenderTable(headers, rows, 3))
}

// FormatProfile renders the global valuation settings.
func FormatProfile(p *domain.Profile) string {
	body := fmt.Sprintf("%s  %d\n%s  %.2f%%",
		StyleDim.Render("CURRENT AGE   "), p.CurrentAge,
		StyleDim.Render("INFLATION RATE"), p.InflationRate*100)
	return RenderBox("Profile", body)
}

func ageCell(m *domain.Milestone) string {
	age := fmt.Sprintf("%d", m.AgeAtOccurrence)
	if m.HasStartLink() {
		return StyleAqua.Render("after "+*m.StartAfterMilestone) + Dim(" ("+age+")")
	}
	return age
}

func durationCell(m *domain.Milestone) string {
	if m.HasDurationLink() {
		return StyleAqua.Render("until " + *m.DurationEndAtMilestone)
	}
	return FormatDuration(m.LiteralDuration(), m.Occurrence)
}

func joinFloats(vals []float64) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, fmt.Sprintf("%g", v))
	}
	return strings.Join(parts, ", ")
}
