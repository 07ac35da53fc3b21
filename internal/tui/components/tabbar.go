package components

import (
	"strings"

	"github.com/theirongolddev/finnova/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: '1', KeyPos: -1},
	{Name: "Transactions", Key: '2', KeyPos: -1},
	{Name: "Goals", Key: '3', KeyPos: -1},
	{Name: "Budget", Key: '4', KeyPos: -1},
}

const tabPadding = 1

func tabLabel(tab Tab) string {
	return string(tab.Key) + " " + tab.Name
}

// TabVisualWidth returns the rendered width of a tab. Active and inactive
// tabs have the same width so click targets do not move.
func TabVisualWidth(tab Tab, _ bool) int {
	return lipgloss.Width(tabLabel(tab)) + 2*tabPadding
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, tabPadding)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Padding(0, tabPadding)

	sepStyle := lipgloss.NewStyle().
		Foreground(t.Border).
		Background(t.Surface)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tabLabel(tab)))
		} else {
			parts = append(parts, inactiveStyle.Render(tabLabel(tab)))
		}
	}

	bar := strings.Join(parts, sepStyle.Render("│"))
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(bar)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
