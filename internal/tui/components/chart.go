package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/finnova/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = max(0, min(idx, len(blocks)-1))
		buf.WriteRune(blocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// BarChart renders a vertical bar chart of values with a y axis. Values
// below zero are drawn as zero.
func BarChart(values []float64, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	yLabelW := max(len(ChartLabel(peak))+1, 4)
	chartW := max(width-yLabelW-1, 5)

	n := len(values)
	if n > chartW {
		values = values[n-chartW:]
		n = chartW
	}
	barW := 1
	gap := 0
	if 2*n-1 <= chartW {
		gap = 1
		barW = max(1, min((chartW-(n-1))/n, 4))
	}

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		top := peak * float64(row) / float64(height)
		bottom := peak * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = ChartLabel(peak)
		} else if row == (height+1)/2 {
			label = ChartLabel(peak / 2)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, label)))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			switch {
			case v >= top:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * 8)
				idx = max(1, min(idx, 8))
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	axisLen := n*barW + max(0, n-1)*gap
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))
	return b.String()
}

// HBar is one row of a horizontal bar chart.
type HBar struct {
	Label string
	Value float64
	Text  string // rendered after the bar
}

// HorizontalBars renders labelled horizontal bars scaled to the largest
// value, one per line.
func HorizontalBars(bars []HBar, color lipgloss.Color, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	textW := 0
	peak := 0.0
	for _, bar := range bars {
		labelW = max(labelW, lipgloss.Width(bar.Label))
		textW = max(textW, lipgloss.Width(bar.Text))
		peak = math.Max(peak, bar.Value)
	}
	labelW = min(labelW, width/3)
	barMax := max(width-labelW-textW-2, 4)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, 0, len(bars))
	for _, bar := range bars {
		n := 0
		if peak > 0 && bar.Value > 0 {
			n = max(1, int(bar.Value/peak*float64(barMax)))
		}
		lines = append(lines,
			labelStyle.Render(fmt.Sprintf("%-*s", labelW, Truncate(bar.Label, labelW)))+
				blank.Render(" ")+
				barStyle.Render(strings.Repeat("█", n))+
				blank.Render(strings.Repeat(" ", barMax-n+1))+
				textStyle.Render(fmt.Sprintf("%*s", textW, bar.Text)))
	}
	return strings.Join(lines, "\n")
}

// ChartLabel formats an axis value compactly, e.g. 1500 -> "1.5k".
func ChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return trimZero(fmt.Sprintf("%.1f", v/1e6)) + "M"
	case v >= 1e3:
		return trimZero(fmt.Sprintf("%.1f", v/1e3)) + "k"
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// Truncate shortens s to limit runes, marking the cut with an ellipsis.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
