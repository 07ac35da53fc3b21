package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/finnova/internal/ledger"
	"github.com/theirongolddev/finnova/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagLimit int
	flagFrom  string
	flagTo    string
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Most recent transactions",
	Long:  "List transactions newest first. --from and --to (YYYY-MM-DD, inclusive) narrow the range.",
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

func init() {
	recentCmd.Flags().IntVarP(&flagLimit, "limit", "n", ledger.RecentLimit, "Number of transactions (0 for all)")
	addRangeFlags(recentCmd)
	rootCmd.AddCommand(recentCmd)
}

// addRangeFlags registers the shared --from/--to date flags.
func addRangeFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagFrom, "from", "", "First date to include (YYYY-MM-DD)")
	c.Flags().StringVar(&flagTo, "to", "", "Last date to include (YYYY-MM-DD)")
}

// parseRange parses --from/--to; unset bounds are zero times.
func parseRange() (from, to time.Time, err error) {
	if flagFrom != "" {
		if from, err = ledger.ParseDate(flagFrom); err != nil {
			return from, to, fmt.Errorf("--from: %w", err)
		}
	}
	if flagTo != "" {
		if to, err = ledger.ParseDate(flagTo); err != nil {
			return from, to, fmt.Errorf("--to: %w", err)
		}
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return from, to, fmt.Errorf("--to %s is before --from %s", flagTo, flagFrom)
	}
	return from, to, nil
}

// selectTransactions returns the transactions in the flag range, newest
// first, cut to limit when limit > 0.
func selectTransactions(s *session, cmd *cobra.Command, limit int) ([]model.Transaction, error) {
	from, to, err := parseRange()
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if from.IsZero() && to.IsZero() {
		return s.svc.Recent(ctx, limit)
	}

	txs, err := s.svc.Filter(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return ledger.NewestFirst(txs, limit), nil
}

func runRecent(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	txs, err := selectTransactions(s, cmd, flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(txs) == 0 {
		fmt.Fprintln(out, "\n  No transactions found.")
		return nil
	}

	title := fmt.Sprintf("Recent Transactions (%d)", len(txs))
	if flagFrom != "" || flagTo != "" {
		title = fmt.Sprintf("Transactions %s – %s (%d)", orDots(flagFrom), orDots(flagTo), len(txs))
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, transactionsTable(title, txs, s.money))
	return nil
}

func orDots(s string) string {
	if s == "" {
		return "…"
	}
	return s
}
