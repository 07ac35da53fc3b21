package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finnova/internal/ledger"
	"github.com/theirongolddev/finnova/internal/model"
	"github.com/theirongolddev/finnova/internal/tui/components"
	"github.com/theirongolddev/finnova/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// goalRowHeight is the number of lines one goal takes in the list.
const goalRowHeight = 3

func (a App) renderGoalsTab(cw, h int) string {
	t := theme.Active
	goals := a.snap.Goals

	if len(goals) == 0 {
		return components.ContentCard("Savings Goals",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No savings goals yet (g to add one)"), cw)
	}

	innerW := components.CardInnerWidth(cw)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	selectedStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	visible := max((h-4)/goalRowHeight, 1)
	list := a.goalList
	start, end := list.window(visible, len(goals))

	barW := max(innerW-10, 10)
	if !a.isCompactLayout() {
		barW = max(innerW/2, 10)
	}

	var body strings.Builder
	for i := start; i < end; i++ {
		g := goals[i]

		marker := "  "
		style := nameStyle
		if i == list.cursor {
			marker = "▸ "
			style = selectedStyle
		}
		head := style.Render(marker+components.Truncate(g.Name, innerW/2)) +
			blank.Render("  ") +
			mutedStyle.Render(fmt.Sprintf("%s of %s · due %s · ",
				a.money(g.SavedAmount), a.money(g.TargetAmount), g.Deadline)) +
			a.goalDueLine(g.Progress)
		body.WriteString(head)
		body.WriteString("\n")

		body.WriteString(blank.Render("  "))
		body.WriteString(components.GoalBar(g.Progress.Progress, barW))
		if g.Progress.Progress < 100 {
			body.WriteString(mutedStyle.Render(fmt.Sprintf("  save %s/month", a.money(g.Progress.RequiredMonthlySavings))))
		}
		body.WriteString("\n")
		if i < end-1 {
			body.WriteString("\n")
		}
	}

	title := fmt.Sprintf("Savings Goals [%d]", len(goals))
	if s := countByState(goals); s != "" {
		title += " · " + s
	}
	return components.ContentCard(title, body.String(), cw)
}

func countByState(goals []ledger.GoalView) string {
	var overdue, urgent int
	for _, g := range goals {
		switch g.Progress.State() {
		case model.GoalOverdue:
			overdue++
		case model.GoalUrgent:
			urgent++
		}
	}
	var parts []string
	if overdue > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", overdue, model.GoalOverdue))
	}
	if urgent > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", urgent, model.GoalUrgent))
	}
	return strings.Join(parts, ", ")
}
