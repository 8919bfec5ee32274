package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/valuation"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatMoney renders x rounded to cents with thousands separators.
func FormatMoney(x float64) string {
	s := decimal.NewFromFloat(valuation.Round2(x)).StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if sign == "-" && b.String() == "0" && frac == "00" {
		sign = ""
	}
	return sign + b.String() + "." + frac
}

// FormatDecimal renders a stored amount the same way as FormatMoney.
func FormatDecimal(d decimal.Decimal) string {
	return FormatMoney(d.InexactFloat64())
}

// FormatAge renders whole ages without a fraction and others to one decimal.
func FormatAge(age float64) string {
	if math.IsNaN(age) || math.IsInf(age, 0) {
		return "--"
	}
	if age == math.Trunc(age) {
		return fmt.Sprintf("%d", int(age))
	}
	return fmt.Sprintf("%.1f", age)
}

// FormatDuration renders a duration with its period unit, e.g. "18y" or "6mo".
func FormatDuration(n float64, o domain.Occurrence) string {
	if n == 0 {
		return Dim("--")
	}
	unit := "y"
	if o == domain.OccurrenceMonthly {
		unit = "mo"
	}
	return FormatAge(n) + unit
}

// TruncID shortens a UUID to its first 8 characters.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
