package components

import (
	"github.com/theirongolddev/finnova/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusKind selects the color of a status message.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusWarn
	StatusError
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// the latest message or the data source on the right.
func RenderStatusBar(width int, hints, source, message string, kind StatusKind) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	msgColor := t.TextMuted
	switch kind {
	case StatusWarn:
		msgColor = t.Warn
	case StatusError:
		msgColor = t.Expense
	}
	msgStyle := lipgloss.NewStyle().Foreground(msgColor).Background(t.Surface).Bold(kind != StatusInfo)

	left := style.Render(" " + hints)
	right := style.Render(source + " ")
	if message != "" {
		right = msgStyle.Render(message + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return left + style.Render(spaces(padding)) + right
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
