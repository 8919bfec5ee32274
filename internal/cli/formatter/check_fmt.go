package formatter

import (
	"strings"

	"github.com/alexanderramin/horizon/internal/timing"
)

// FormatCheck renders link issues and cycles. names maps milestone ids to
// names so cycles read as names.
func FormatCheck(issues []timing.Issue, cycles [][]string, names map[string]string) string {
	if len(issues) == 0 && len(cycles) == 0 {
		return StyleGreen.Render("✔ No data issues found.")
	}

	var b strings.Builder
	if len(issues) > 0 {
		rows := make([][]string, 0, len(issues))
		for _, is := range issues {
			rows = append(rows, []string{issueKind(is.Kind), Bold(is.MilestoneName), is.String()})
		}
		b.WriteString(RenderTable([]string{"KIND", "MILESTONE", "DETAIL"}, rows))
	}
	if len(cycles) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header("Cycles"))
		for _, c := range cycles {
			path := make([]string, 0, len(c)+1)
			for _, id := range c {
				path = append(path, nameOr(names, id))
			}
			path = append(path, nameOr(names, c[0]))
			b.WriteString("\n" + StyleRed.Render("↻ ") + strings.Join(path, " → "))
		}
	}
	return RenderBox("Check", strings.TrimRight(b.String(), "\n"))
}

func issueKind(k timing.IssueKind) string {
	switch k {
	case timing.IssueCycle, timing.IssueSelfReference:
		return StyleRed.Render(string(k))
	case timing.IssueDangling:
		return StyleYellow.Render(string(k))
	default:
		return StyleDim.Render(string(k))
	}
}

func nameOr(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return TruncID(id)
}
