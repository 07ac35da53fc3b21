package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/finnova/internal/cli"
	"github.com/theirongolddev/finnova/internal/ledger"

	"github.com/spf13/cobra"
)

var flagExpenseCategory string

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Record expenses",
}

var expenseAddCmd = &cobra.Command{
	Use:     "add AMOUNT [DESCRIPTION...]",
	Short:   "Add an expense to a category",
	Example: "  finnova expense add 12.50 -c Food lunch",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runExpenseAdd,
}

func init() {
	expenseAddCmd.Flags().StringVarP(&flagExpenseCategory, "category", "c", "", "Expense category (required)")
	_ = expenseAddCmd.MarkFlagRequired("category")
	expenseCmd.AddCommand(expenseAddCmd)
	rootCmd.AddCommand(expenseCmd)
}

func runExpenseAdd(cmd *cobra.Command, args []string) error {
	amount, err := ledger.ParseAmount(args[0])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	rec, over, err := s.svc.AddExpense(ctx, amount, flagExpenseCategory, strings.Join(args[1:], " "))
	if errors.Is(err, ledger.ErrUnknownCategory) {
		cats, _ := s.svc.Categories(ctx)
		return fmt.Errorf("%w (known: %s; add one with `finnova category add`)", err, strings.Join(cats, ", "))
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Added expense %s to %s on %s\n", s.money(rec.Amount), rec.Category, rec.Timestamp)
	if over && s.cfg.Budget.WarnOverBudget {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s %s is over its budget\n", cli.WarnStyle.Render("warning:"), rec.Category)
	}
	return nil
}
