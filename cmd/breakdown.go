package cmd

import (
	"fmt"

	"github.com/theirongolddev/finnova/internal/cli"

	"github.com/spf13/cobra"
)

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Expense totals per category",
	Args:  cobra.NoArgs,
	RunE:  runBreakdown,
}

func init() {
	rootCmd.AddCommand(breakdownCmd)
}

func runBreakdown(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := s.svc.Breakdown(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if b.Len() == 0 {
		fmt.Fprintln(out, "\n  No expenses recorded.")
		return nil
	}

	total := 0.0
	for _, v := range b.Amounts {
		total += v
	}

	rows := make([][]string, 0, b.Len()+2)
	for i, c := range b.Categories {
		rows = append(rows, []string{c, s.money(b.Amounts[i]), cli.FormatPercent(b.Amounts[i] / total * 100)})
	}
	rows = append(rows, []string{cli.Separator}, []string{"Total", s.money(total), cli.FormatPercent(100)})

	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Title:   "Expense Breakdown",
		Headers: []string{"Category", "Spent", "Share"},
		Rows:    rows,
	}))
	fmt.Fprintln(out)
	writeBreakdown(out, b, s.money)
	return nil
}
