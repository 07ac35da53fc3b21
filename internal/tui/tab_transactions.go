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

func (a App) renderTransactionsTab(cw, h int) string {
	t := theme.Active
	txs := a.transactions

	if len(txs) == 0 {
		return components.ContentCard("Transactions",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No transactions yet (e or i to add one)"), cw)
	}

	innerW := components.CardInnerWidth(cw)
	dateW, typeW, amountW := 10, 7, 14
	catW := 14
	if a.isCompactLayout() {
		catW = 10
	}
	descW := max(innerW-dateW-typeW-catW-amountW-4, 8)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %-*s %-*s %-*s %*s",
		dateW, "Date", typeW, "Type", catW, "Category", descW, "Description", amountW, "Amount")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	// card border (2) + header rows (2) + footer (2)
	visible := max(h-6, 3)
	list := a.txList
	start, end := list.window(visible, len(txs))

	for i := start; i < end; i++ {
		tx := txs[i]
		line := fmt.Sprintf("%-*s %-*s %-*s %-*s ",
			dateW, tx.Date,
			typeW, tx.Type,
			catW, components.Truncate(tx.Category, catW),
			descW, components.Truncate(tx.Description, descW))
		if i == list.cursor {
			body.WriteString(selectedStyle.Render(line))
		} else {
			body.WriteString(rowStyle.Render(line))
		}
		body.WriteString(a.signedAmount(tx, amountW))
		body.WriteString("\n")
	}

	income, expenses := 0, 0
	for _, tx := range txs {
		if tx.Type == model.TypeIncome {
			income++
		} else {
			expenses++
		}
	}
	body.WriteString(mutedStyle.Render(fmt.Sprintf("%d–%d of %s · %s income · %s expenses",
		start+1, end, cli.FormatCount(len(txs)), cli.FormatCount(income), cli.FormatCount(expenses))))

	return components.ContentCard("Transactions", body.String(), cw)
}
