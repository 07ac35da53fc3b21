package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finnova/internal/ledger"

	"github.com/spf13/cobra"
)

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Record income",
}

var incomeAddCmd = &cobra.Command{
	Use:     "add AMOUNT [DESCRIPTION...]",
	Short:   "Add an income entry",
	Example: "  finnova income add 50000 March salary",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runIncomeAdd,
}

func init() {
	incomeCmd.AddCommand(incomeAddCmd)
	rootCmd.AddCommand(incomeCmd)
}

func runIncomeAdd(cmd *cobra.Command, args []string) error {
	amount, err := ledger.ParseAmount(args[0])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.svc.AddIncome(cmd.Context(), amount, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Added income %s on %s\n", s.money(rec.Amount), rec.Timestamp)
	return nil
}
