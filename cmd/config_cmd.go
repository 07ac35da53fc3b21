package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finnova/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Backend:   %s\n", cfg.General.Backend)
	fmt.Fprintf(out, "    Data file: %s\n", cfg.DataPath())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Display]")
	fmt.Fprintf(out, "    Currency:     %s\n", cfg.Display.Currency)
	fmt.Fprintf(out, "    Theme:        %s\n", cfg.Display.Theme)
	fmt.Fprintf(out, "    Recent limit: %d\n", cfg.Display.RecentLimit)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Budget]")
	fmt.Fprintf(out, "    Warn over budget:   %v\n", cfg.Budget.WarnOverBudget)
	if len(cfg.Budget.DefaultCategories) > 0 {
		fmt.Fprintf(out, "    Default categories: %s\n", strings.Join(cfg.Budget.DefaultCategories, ", "))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  Environment overrides: %s, %s, %s\n", config.EnvDataFile, config.EnvBackend, config.EnvCurrency)
	fmt.Fprintln(out, "  Run `finnova setup` to reconfigure.")
	return nil
}
