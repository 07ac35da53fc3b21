package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finnova/internal/cli"
	"github.com/theirongolddev/finnova/internal/tui/components"
	"github.com/theirongolddev/finnova/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	report := a.snap.Budget

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	usedPct := 0.0
	if report.TotalBudget > 0 {
		usedPct = report.TotalSpent / report.TotalBudget * 100
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Budgeted", Value: a.money(report.TotalBudget), Color: t.Accent},
		{Label: "Spent", Value: a.money(report.TotalSpent), Note: cli.FormatPercent(usedPct) + " used", Color: t.Expense},
		{Label: "Remaining", Value: a.money(report.TotalRemaining), Color: t.MoneyColor(report.TotalRemaining)},
	}, cw))
	b.WriteString("\n")

	if len(report.Rows) == 0 {
		b.WriteString(components.ContentCard("Budgets", mutedStyle.Render("No budgets set (b to set one)"), cw))
		return b.String()
	}

	innerW := components.CardInnerWidth(cw)
	moneyW := 14
	catW := 14
	cols := 3
	if a.isCompactLayout() {
		cols = 1
	}
	barW := max(innerW-catW-cols*(moneyW+1)-10, 8)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var body strings.Builder
	if cols == 3 {
		body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s  %s",
			catW, "Category", moneyW, "Budget", moneyW, "Spent", moneyW, "Remaining", "Used")))
	} else {
		body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s  %s", catW, "Category", moneyW, "Remaining", "Used")))
	}
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	for _, row := range report.Rows {
		body.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", catW, components.Truncate(row.Category, catW))))
		remaining := lipgloss.NewStyle().Foreground(t.MoneyColor(row.Remaining)).Background(t.Surface).
			Render(fmt.Sprintf(" %*s", moneyW, a.money(row.Remaining)))
		if cols == 3 {
			body.WriteString(nameStyle.Render(fmt.Sprintf(" %*s %*s", moneyW, a.money(row.Budget), moneyW, a.money(row.Spent))))
		}
		body.WriteString(remaining)
		body.WriteString(blank.Render("  "))
		body.WriteString(components.BudgetBar(row.UsedPercent, barW))
		body.WriteString("\n")
	}

	b.WriteString(components.ContentCard("Budgets", body.String(), cw))
	return b.String()
}
