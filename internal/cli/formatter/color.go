package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TypeStyle returns the style used for a milestone type everywhere it is drawn.
func TypeStyle(t domain.MilestoneType) lipgloss.Style {
	switch t {
	case domain.MilestoneIncome:
		return StyleGreen
	case domain.MilestoneExpense:
		return StyleRed
	case domain.MilestoneAsset:
		return StyleBlue
	case domain.MilestoneLiability:
		return StyleYellow
	case domain.MilestoneGroup:
		return StylePurple
	default:
		return StyleDim
	}
}

// TypeBadge renders a milestone type as a colored marker and label.
func TypeBadge(t domain.MilestoneType) string {
	marker := "●"
	if t == domain.MilestoneGroup {
		marker = "◆"
	}
	return TypeStyle(t).Render(marker + " " + string(t))
}

// Signed renders a money amount green when positive and red when negative.
func Signed(x float64) string {
	s := FormatMoney(x)
	switch {
	case x > 0:
		return StyleGreen.Render(s)
	case x < 0:
		return StyleRed.Render(s)
	default:
		return StyleDim.Render(s)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
