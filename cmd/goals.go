package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finnova/internal/cli"
	"github.com/theirongolddev/finnova/internal/ledger"

	"github.com/spf13/cobra"
)

var flagGoalID bool

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals"},
	Short:   "Manage savings goals",
	RunE:    runGoalList,
}

var goalAddCmd = &cobra.Command{
	Use:     "add NAME TARGET DEADLINE",
	Short:   "Add a savings goal",
	Example: "  finnova goal add \"New laptop\" 80000 2025-06-30",
	Args:    cobra.ExactArgs(3),
	RunE:    runGoalAdd,
}

var goalSaveCmd = &cobra.Command{
	Use:   "save NAME AMOUNT",
	Short: "Add savings to a goal",
	Long: "Add savings to the first goal with the given name, or to the goal with the\n" +
		"given ID when --id is set.",
	Args: cobra.ExactArgs(2),
	RunE: runGoalSave,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals with progress",
	Args:  cobra.NoArgs,
	RunE:  runGoalList,
}

func init() {
	goalSaveCmd.Flags().BoolVar(&flagGoalID, "id", false, "Treat NAME as a goal ID")
	goalCmd.AddCommand(goalAddCmd, goalSaveCmd, goalListCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	target, err := ledger.ParseAmount(args[1])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := s.svc.AddGoal(cmd.Context(), args[0], target, args[2])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Added goal %q: %s by %s (id %s)\n", g.Name, s.money(g.TargetAmount), g.Deadline, g.ID)
	return nil
}

func runGoalSave(cmd *cobra.Command, args []string) error {
	amount, err := ledger.ParseAmount(args[1])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	var found bool
	if flagGoalID {
		found, err = s.svc.UpdateGoalSavingsByID(ctx, args[0], amount)
	} else {
		found, err = s.svc.UpdateGoalSavings(ctx, args[0], amount)
	}
	if err != nil {
		return err
	}

	// A miss is a warning, not a failure.
	if !found {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s no goal named %q\n", cli.WarnStyle.Render("warning:"), args[0])
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Saved %s toward %s\n", s.money(amount), args[0])
	return nil
}

func runGoalList(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := s.svc.Snapshot(cmd.Context(), 0)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(snap.Goals) == 0 {
		fmt.Fprintln(out, "\n  No savings goals yet.")
		return nil
	}

	rows := make([][]string, 0, len(snap.Goals))
	for _, g := range snap.Goals {
		monthly := s.money(g.Progress.RequiredMonthlySavings)
		if g.Progress.Progress >= 100 {
			monthly = cli.IncomeStyle.Render("reached")
		}
		rows = append(rows, []string{
			g.Name,
			g.Deadline,
			goalStateLabel(g.Progress),
			s.money(g.SavedAmount) + " / " + s.money(g.TargetAmount),
			cli.RenderProgressBar(g.Progress.Progress, 20),
			monthly,
		})
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Title:    fmt.Sprintf("Savings Goals (%d)", len(snap.Goals)),
		Headers:  []string{"Goal", "Deadline", "Due", "Saved", "Progress", "Per Month"},
		Rows:     rows,
		LeftCols: 3,
	}))

	if flagVerbose {
		ids := make([]string, len(snap.Goals))
		for i, g := range snap.Goals {
			ids[i] = g.Name + "=" + g.ID
		}
		fmt.Fprintln(out, cli.MutedStyle.Render("  ids: "+strings.Join(ids, ", ")))
	}
	return nil
}
