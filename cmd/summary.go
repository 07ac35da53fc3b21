package cmd

import (
	"fmt"
	"io"

	"github.com/theirongolddev/finnova/internal/cli"
	"github.com/theirongolddev/finnova/internal/ledger"
	"github.com/theirongolddev/finnova/internal/model"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Balance, recent transactions, spending and goals",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := s.svc.Snapshot(cmd.Context(), s.recentLimit())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle("FINANCE SUMMARY  "+snap.LoadedAt.Format("Jan 2, 2006")))
	fmt.Fprintln(out)

	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers: []string{"Totals", "Amount"},
		Rows: [][]string{
			{"Income", cli.IncomeStyle.Render(s.money(snap.Totals.Income))},
			{"Expenses", cli.ExpenseStyle.Render(s.money(snap.Totals.Expenses))},
			{cli.Separator},
			{"Balance", balanceStyle(snap.Totals.Balance)(s.money(snap.Totals.Balance))},
		},
	}))
	fmt.Fprintln(out)

	if len(snap.Recent) > 0 {
		fmt.Fprint(out, transactionsTable("Recent Transactions", snap.Recent, s.money))
		fmt.Fprintln(out)
	}

	if snap.Breakdown.Len() > 0 {
		writeBreakdown(out, snap.Breakdown, s.money)
		fmt.Fprintln(out)
	}

	if g, ok := snap.LatestGoal(); ok {
		writeGoal(out, g, s.money)
		fmt.Fprintln(out)
	}

	for _, row := range snap.Budget.Rows {
		if row.Remaining < 0 {
			fmt.Fprintf(out, "  %s %s is over budget by %s\n",
				cli.WarnStyle.Render("!"), row.Category, s.money(-row.Remaining))
		}
	}

	if len(snap.Recent) == 0 && len(snap.Goals) == 0 {
		fmt.Fprintln(out, cli.MutedStyle.Render("  Nothing recorded yet. Try `finnova income add 1000 salary`."))
	}
	return nil
}

func balanceStyle(v float64) func(...string) string {
	if v < 0 {
		return cli.ExpenseStyle.Render
	}
	return cli.IncomeStyle.Render
}

// transactionsTable renders merged transactions as a table.
func transactionsTable(title string, txs []model.Transaction, money func(float64) string) string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		amount := cli.ExpenseStyle.Render(money(tx.Amount))
		if tx.Type == model.TypeIncome {
			amount = cli.IncomeStyle.Render(money(tx.Amount))
		}
		rows = append(rows, []string{tx.Date, tx.Type, tx.Category, tx.Description, amount})
	}
	return cli.RenderTable(cli.Table{
		Title:    title,
		Headers:  []string{"Date", "Type", "Category", "Description", "Amount"},
		Rows:     rows,
		LeftCols: 4,
	})
}

func writeBreakdown(out io.Writer, b model.Breakdown, money func(float64) string) {
	labelW := 0
	peak := 0.0
	for i, c := range b.Categories {
		labelW = max(labelW, len([]rune(c)))
		peak = max(peak, b.Amounts[i])
	}
	fmt.Fprintln(out, cli.MutedStyle.Render("  Spending by category"))
	for i, c := range b.Categories {
		fmt.Fprintln(out, cli.RenderHorizontalBar(c, money(b.Amounts[i]), b.Amounts[i], peak, labelW, 30))
	}
}

func writeGoal(out io.Writer, g ledger.GoalView, money func(float64) string) {
	fmt.Fprintf(out, "  Goal: %s  %s of %s, due %s (%s)\n",
		g.Name, money(g.SavedAmount), money(g.TargetAmount), g.Deadline, goalStateLabel(g.Progress))
	fmt.Fprintf(out, "  %s\n", cli.RenderProgressBar(g.Progress.Progress, 30))
	if g.Progress.Progress < 100 {
		fmt.Fprintf(out, "  %s\n", cli.MutedStyle.Render(fmt.Sprintf("Save %s per month to make it", money(g.Progress.RequiredMonthlySavings))))
	}
}

func goalStateLabel(p model.GoalProgress) string {
	label := cli.FormatDaysLeft(p.DaysRemaining)
	switch p.State() {
	case model.GoalOverdue:
		return cli.ExpenseStyle.Render(label)
	case model.GoalUrgent:
		return cli.WarnStyle.Render(label)
	default:
		return label
	}
}
