package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finnova/internal/cli"
	"github.com/theirongolddev/finnova/internal/model"
	"github.com/theirongolddev/finnova/internal/tui/components"
	"github.com/theirongolddev/finnova/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) money(v float64) string {
	return cli.FormatMoney(a.cfg.Display.Currency, v)
}

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	snap := a.snap

	urgent := 0
	for _, g := range snap.Goals {
		if g.Progress.State() != model.GoalOnTrack {
			urgent++
		}
	}
	goalNote := ""
	if urgent > 0 {
		goalNote = fmt.Sprintf("%d need attention", urgent)
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Income", Value: a.money(snap.Totals.Income), Color: t.Income},
		{Label: "Expenses", Value: a.money(snap.Totals.Expenses), Color: t.Expense},
		{Label: "Balance", Value: a.money(snap.Totals.Balance), Color: t.MoneyColor(snap.Totals.Balance)},
		{Label: "Goals", Value: cli.FormatCount(len(snap.Goals)), Note: goalNote, Color: t.Savings},
	}, cw))
	b.WriteString("\n")

	recent := a.renderRecentCard
	breakdown := a.renderBreakdownCard
	daily := a.renderDailyCard
	goal := a.renderLatestGoalCard

	if a.isCompactLayout() {
		b.WriteString(recent(cw))
		b.WriteString("\n")
		b.WriteString(breakdown(cw))
		b.WriteString("\n")
		b.WriteString(goal(cw))
		b.WriteString("\n")
		b.WriteString(daily(cw))
		return b.String()
	}

	widths := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{recent(widths[0]), breakdown(widths[1])}))
	b.WriteString("\n")
	b.WriteString(components.CardRow([]string{daily(widths[0]), goal(widths[1])}))
	return b.String()
}

func (a App) renderRecentCard(w int) string {
	t := theme.Active
	inner := components.CardInnerWidth(w)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(a.snap.Recent) == 0 {
		return components.ContentCard("Recent Transactions", mutedStyle.Render("No transactions yet"), w)
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	descStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	amountW := 14
	descW := max(inner-10-1-amountW-1, 6)

	lines := make([]string, 0, len(a.snap.Recent))
	for _, tx := range a.snap.Recent {
		label := tx.Description
		if tx.Type == model.TypeExpense {
			label = tx.Category + ": " + tx.Description
		}
		if strings.TrimSpace(tx.Description) == "" {
			label = strings.TrimSuffix(label, ": ")
		}
		lines = append(lines,
			dateStyle.Render(fmt.Sprintf("%-10s ", tx.Date))+
				descStyle.Render(fmt.Sprintf("%-*s ", descW, components.Truncate(label, descW)))+
				a.signedAmount(tx, amountW))
	}
	return components.ContentCard("Recent Transactions", strings.Join(lines, "\n"), w)
}

// signedAmount renders a transaction amount colored and signed by type.
func (a App) signedAmount(tx model.Transaction, w int) string {
	t := theme.Active
	if tx.Type == model.TypeIncome {
		return lipgloss.NewStyle().Foreground(t.Income).Background(t.Surface).
			Render(fmt.Sprintf("%*s", w, "+"+a.money(tx.Amount)))
	}
	return lipgloss.NewStyle().Foreground(t.Expense).Background(t.Surface).
		Render(fmt.Sprintf("%*s", w, "-"+a.money(tx.Amount)))
}

func (a App) renderBreakdownCard(w int) string {
	t := theme.Active
	bd := a.snap.Breakdown
	if bd.Len() == 0 {
		return components.ContentCard("Spending by Category",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No expenses yet"), w)
	}

	bars := make([]components.HBar, bd.Len())
	for i := range bd.Categories {
		bars[i] = components.HBar{
			Label: bd.Categories[i],
			Value: bd.Amounts[i],
			Text:  cli.FormatAmount(bd.Amounts[i]),
		}
	}
	return components.ContentCard("Spending by Category",
		components.HorizontalBars(bars, t.Expense, components.CardInnerWidth(w)), w)
}

func (a App) renderDailyCard(w int) string {
	t := theme.Active
	days := a.snap.Daily
	title := "Daily Spending"
	if len(days) == 0 {
		return components.ContentCard(title, "", w)
	}

	title = fmt.Sprintf("Daily Spending · %s – %s", days[len(days)-1].Date.Format("Jan 2"), days[0].Date.Format("Jan 2"))

	chart := components.BarChart(dailyExpenses(days), t.Expense, components.CardInnerWidth(w), 6)
	return components.ContentCard(title, chart, w)
}

func (a App) renderLatestGoalCard(w int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	g, ok := a.snap.LatestGoal()
	if !ok {
		return components.ContentCard("Latest Goal", mutedStyle.Render("No savings goals yet (g to add one)"), w)
	}

	inner := components.CardInnerWidth(w)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(nameStyle.Render(components.Truncate(g.Name, inner)))
	b.WriteString("\n\n")
	b.WriteString(components.GoalBar(g.Progress.Progress, max(inner-8, 4)))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s of %s", a.money(g.SavedAmount), a.money(g.TargetAmount))))
	b.WriteString("\n")
	b.WriteString(a.goalDueLine(g.Progress))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Save " + a.money(g.Progress.RequiredMonthlySavings) + " per month"))
	return components.ContentCard("Latest Goal", b.String(), w)
}

// goalDueLine renders the remaining days colored by goal state.
func (a App) goalDueLine(p model.GoalProgress) string {
	t := theme.Active
	color := t.TextMuted
	switch p.State() {
	case model.GoalOverdue:
		color = t.Expense
	case model.GoalUrgent:
		color = t.Warn
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(cli.FormatDaysLeft(p.DaysRemaining))
}
