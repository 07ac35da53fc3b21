package cmd

import (
	"fmt"

	"github.com/theirongolddev/finnova/internal/cli"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories"},
	Short:   "Manage expense categories",
	RunE:    runCategoryList,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		name, err := s.svc.AddCategory(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Added category %q\n", name)
		return nil
	},
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename OLD NEW",
	Short: "Rename a category, keeping its budget",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.svc.RenameCategory(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Renamed %q to %q\n", args[0], args[1])
		return nil
	},
}

var categoryRmCmd = &cobra.Command{
	Use:     "rm NAME",
	Aliases: []string{"delete"},
	Short:   "Delete a category and its budget",
	Long:    "Delete a category and its budget. Recorded expenses keep the category name.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.svc.DeleteCategory(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Deleted category %q\n", args[0])
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with budgets and spending",
	Args:  cobra.NoArgs,
	RunE:  runCategoryList,
}

func init() {
	categoryCmd.AddCommand(categoryAddCmd, categoryRenameCmd, categoryRmCmd, categoryListCmd)
	rootCmd.AddCommand(categoryCmd)
}

func runCategoryList(cmd *cobra.Command, _ []string) error {
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
	if len(snap.Categories) == 0 {
		fmt.Fprintln(out, "\n  No categories yet. Add one with `finnova category add NAME`.")
		return nil
	}

	spent := make(map[string]float64, snap.Breakdown.Len())
	for i, c := range snap.Breakdown.Categories {
		spent[c] = snap.Breakdown.Amounts[i]
	}

	rows := make([][]string, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		budget := cli.MutedStyle.Render("-")
		if v := snap.Document.Budget[c]; v > 0 {
			budget = s.money(v)
		}
		rows = append(rows, []string{c, budget, s.money(spent[c])})
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Categories (%d)", len(snap.Categories)),
		Headers: []string{"Category", "Budget", "Spent"},
		Rows:    rows,
	}))
	return nil
}
