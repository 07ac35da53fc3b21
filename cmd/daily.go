package cmd

import (
	"fmt"

	"github.com/theirongolddev/finnova/internal/cli"
	"github.com/theirongolddev/finnova/internal/ledger"

	"github.com/spf13/cobra"
)

var flagDays int

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily income and expense table",
	Args:  cobra.NoArgs,
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().IntVarP(&flagDays, "days", "d", 14, "Number of days to show")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	if flagDays < 1 {
		return fmt.Errorf("--days must be at least 1")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.svc.Document(cmd.Context())
	if err != nil {
		return err
	}
	now := s.svc.Now()
	days := ledger.DailyTotals(doc, now.AddDate(0, 0, -(flagDays-1)), now)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("DAILY TOTALS  Last %dd", flagDays)))
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(days))
	spend := make([]float64, len(days))
	for i, d := range days {
		net := d.Income - d.Expenses
		netStr := s.money(net)
		if net < 0 {
			netStr = cli.ExpenseStyle.Render(netStr)
		}
		rows = append(rows, []string{
			d.Date.Format("2006-01-02"),
			d.Date.Format("Mon"),
			s.money(d.Income),
			s.money(d.Expenses),
			netStr,
		})
		spend[len(days)-1-i] = d.Expenses
	}

	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers:  []string{"Date", "Day", "Income", "Expenses", "Net"},
		Rows:     rows,
		LeftCols: 2,
	}))
	fmt.Fprintf(out, "\n  Spending  %s\n", cli.RenderSparkline(spend))
	return nil
}
