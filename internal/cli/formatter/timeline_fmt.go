package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/horizon/internal/layout"
)

const axisStep = 10

// FormatTimeline draws one row per slot on a character grid as wide as the
// scale, followed by an age axis and a legend. Positions outside the grid are
// clipped to its edges.
func FormatTimeline(scale layout.Scale, placements []layout.Placement) string {
	width := int(math.Round(scale.Width))
	if width <= 0 || len(placements) == 0 {
		return Dim("Nothing to draw.")
	}

	rows := 0
	for _, p := range placements {
		rows = max(rows, p.Slot+1)
	}
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	owners := make([]*layout.Placement, rows)

	for i := range placements {
		p := &placements[i]
		owners[p.Slot] = p
		row := grid[p.Slot]
		for _, prim := range p.Primitives {
			switch prim.Kind {
			case layout.PrimitivePoint:
				row[column(prim.X, width)] = '●'
			case layout.PrimitiveStart:
				row[column(prim.X, width)] = '├'
			case layout.PrimitiveEnd:
				row[column(prim.X, width)] = '┤'
			case layout.PrimitiveLine:
				for c := column(prim.X, width); c <= column(prim.X2, width); c++ {
					if row[c] == ' ' {
						row[c] = '─'
					}
				}
			}
		}
	}

	var b strings.Builder
	for slot, row := range grid {
		p := owners[slot]
		if p == nil {
			b.WriteString(strings.TrimRight(string(row), " ") + "\n")
			continue
		}
		style := TypeStyle(p.Type)
		b.WriteString(style.Render(string(row)) + "  " + placementLabel(*p) + "\n")
	}
	b.WriteString(axis(scale, width))
	b.WriteString("\n" + legend())
	return b.String()
}

func placementLabel(p layout.Placement) string {
	name := p.Name
	for _, prim := range p.Primitives {
		if prim.Kind == layout.PrimitiveLabel {
			name = prim.Text
		}
	}
	if p.IsSpan() {
		return name + Dim(fmt.Sprintf(" (%s-%s)", FormatAge(p.StartAge), FormatAge(p.EndAge)))
	}
	return name + Dim(" ("+FormatAge(p.StartAge)+")")
}

// axis renders a ruler with a tick at every multiple of axisStep and the age
// under each tick that has room for it.
func axis(scale layout.Scale, width int) string {
	ruler := []rune(strings.Repeat("─", width))
	labels := []rune(strings.Repeat(" ", width))
	nextFree := 0

	first := math.Ceil(scale.CurrentAge/axisStep) * axisStep
	for age := first; age <= scale.MaxAge; age += axisStep {
		c := column(scale.X(age), width)
		ruler[c] = '┴'
		text := []rune(FormatAge(age))
		if c < nextFree || c+len(text) > width {
			continue
		}
		copy(labels[c:], text)
		nextFree = c + len(text) + 1
	}
	return Dim(string(ruler)) + "\n" + Dim(strings.TrimRight(string(labels), " "))
}

func legend() string {
	parts := make([]string, 0, len(typeOrder))
	for _, t := range typeOrder {
		parts = append(parts, TypeBadge(t))
	}
	return strings.Join(parts, "  ")
}

func column(x float64, width int) int {
	if math.IsNaN(x) {
		return 0
	}
	c := int(math.Round(x))
	return min(max(c, 0), width-1)
}
