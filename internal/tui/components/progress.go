package components

import (
	"fmt"

	"github.com/theirongolddev/finnova/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ClampPercent limits a percentage to 0-100 for drawing. Labels keep the
// unclamped value.
func ClampPercent(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}

// ProgressBar renders a bar filled to pct percent (clamped), in color,
// followed by the real percentage.
func ProgressBar(pct float64, width int, color lipgloss.Color) string {
	t := theme.Active
	if width < 4 {
		width = 4
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(ClampPercent(pct)/100) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct))
}

// GoalBar renders savings progress toward a goal.
func GoalBar(pct float64, width int) string {
	t := theme.Active
	color := t.Savings
	if pct >= 100 {
		color = t.Income
	}
	return ProgressBar(pct, width, color)
}

// BudgetBar renders how much of a budget has been used.
func BudgetBar(usedPct float64, width int) string {
	return ProgressBar(usedPct, width, theme.Active.UsageColor(usedPct))
}
