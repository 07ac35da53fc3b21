package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/finnova/internal/config"
	"github.com/theirongolddev/finnova/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	vals := tui.NewSetupValues(s.cfg)
	if err := tui.NewSetupForm(vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "  Setup cancelled.")
			return nil
		}
		return err
	}

	if _, err := tui.ApplySetup(cmd.Context(), s.svc, s.cfg, vals); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Saved to %s\n", config.ConfigPath())
	fmt.Fprintf(out, "  Data file: %s\n", s.path)
	fmt.Fprintln(out, "  Run `finnova setup` anytime to reconfigure.")
	fmt.Fprintln(out)
	return nil
}
