package cmd

import (
	"fmt"

	"github.com/theirongolddev/finnova/internal/log"
	"github.com/theirongolddev/finnova/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagNoWatch bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "Do not reload when the data file changes")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// The dashboard owns the terminal; only errors may be logged.
	flagQuiet, flagVerbose = true, false

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	var watcher *tui.DataWatcher
	if !flagNoWatch {
		watcher, err = tui.NewDataWatcher(s.path, 0)
		if err != nil {
			s.log.WithComponent(log.ComponentTUI).Warn("live reload disabled", log.FieldError, err)
		} else {
			defer func() { _ = watcher.Close() }()
		}
	}

	// Force TrueColor profile so all background styling produces ANSI codes.
	// Without this, lipgloss may default to Ascii profile (no colors).
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(s.svc, s.cfg, s.path, watcher)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
