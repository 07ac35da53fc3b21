package cmd

import (
	"fmt"

	"github.com/theirongolddev/finnova/internal/cli"
	"github.com/theirongolddev/finnova/internal/ledger"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Category budgets",
	RunE:  runBudgetShow,
}

var budgetSetCmd = &cobra.Command{
	Use:     "set CATEGORY AMOUNT",
	Short:   "Set the budget of a category (0 clears it)",
	Example: "  finnova budget set Food 8000",
	Args:    cobra.ExactArgs(2),
	RunE:    runBudgetSet,
}

var budgetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show budget usage per category",
	Args:  cobra.NoArgs,
	RunE:  runBudgetShow,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd, budgetShowCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetSet(cmd *cobra.Command, args []string) error {
	amount, err := ledger.ParseBudget(args[1])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.svc.SetBudget(cmd.Context(), args[0], amount); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Budget for %s set to %s\n", args[0], s.money(amount))
	return nil
}

func runBudgetShow(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := s.svc.Budget(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(report.Rows) == 0 {
		fmt.Fprintln(out, "\n  No budgets set. Use `finnova budget set CATEGORY AMOUNT`.")
		return nil
	}

	rows := make([][]string, 0, len(report.Rows)+2)
	for _, r := range report.Rows {
		remaining := s.money(r.Remaining)
		if r.Remaining < 0 {
			remaining = cli.ExpenseStyle.Render(remaining)
		}
		rows = append(rows, []string{
			r.Category,
			s.money(r.Budget),
			s.money(r.Spent),
			remaining,
			cli.RenderProgressBar(r.UsedPercent, 16),
		})
	}
	rows = append(rows,
		[]string{cli.Separator},
		[]string{"Total", s.money(report.TotalBudget), s.money(report.TotalSpent), s.money(report.TotalRemaining), ""},
	)

	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Title:   "Budgets",
		Headers: []string{"Category", "Budget", "Spent", "Remaining", "Used"},
		Rows:    rows,
	}))
	return nil
}
