package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/finnova/internal/config"
	"github.com/theirongolddev/finnova/internal/ledger"
	"github.com/theirongolddev/finnova/internal/tui/components"
	"github.com/theirongolddev/finnova/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the first-run wizard.
type SetupValues struct {
	Currency   string
	Theme      string
	Categories []string
	Warn       bool
}

// NewSetupValues seeds the wizard answers from cfg.
func NewSetupValues(cfg config.Config) *SetupValues {
	cats := cfg.Budget.DefaultCategories
	if len(cats) == 0 {
		cats = config.DefaultCategories
	}
	return &SetupValues{
		Currency:   cfg.Display.Currency,
		Theme:      cfg.Display.Theme,
		Categories: append([]string(nil), cats...),
		Warn:       cfg.Budget.WarnOverBudget,
	}
}

// apply copies the answers into cfg.
func (v SetupValues) apply(cfg config.Config) config.Config {
	cfg.Display.Currency = strings.TrimSpace(v.Currency)
	cfg.Display.Theme = v.Theme
	cfg.Budget.WarnOverBudget = v.Warn
	cfg.Budget.DefaultCategories = v.Categories
	return cfg
}

// NewSetupForm builds the first-run wizard bound to vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, th := range theme.All {
		themeOpts[i] = huh.NewOption(th.Name, th.Name)
	}

	catOpts := make([]huh.Option[string], len(config.DefaultCategories))
	for i, c := range config.DefaultCategories {
		catOpts[i] = huh.NewOption(c, c).Selected(contains(vals.Categories, c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to finnova").
				Description("Track income, expenses, budgets and savings goals.\nLet's set up a few things."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				Description("Shown in front of every amount").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("currency symbol is required")
					}
					return nil
				}).
				Value(&vals.Currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Starting categories").
				Description("More can be added later").
				Options(catOpts...).
				Value(&vals.Categories),
			huh.NewConfirm().
				Title("Warn when an expense goes over budget?").
				Value(&vals.Warn),
		),
	).WithShowHelp(true)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ApplySetup saves the wizard answers to the config file and adds the chosen
// categories that the document does not have yet.
func ApplySetup(ctx context.Context, svc *ledger.Service, cfg config.Config, vals *SetupValues) (config.Config, error) {
	cfg = vals.apply(cfg)
	if err := config.Save(cfg); err != nil {
		return cfg, fmt.Errorf("saving config: %w", err)
	}
	for _, c := range vals.Categories {
		if _, err := svc.AddCategory(ctx, c); err != nil && !errors.Is(err, ledger.ErrCategoryExists) {
			return cfg, fmt.Errorf("adding category %q: %w", c, err)
		}
	}
	return cfg, nil
}

func saveSetupCmd(svc *ledger.Service, cfg config.Config, vals SetupValues) tea.Cmd {
	return func() tea.Msg {
		if _, err := ApplySetup(context.Background(), svc, cfg, &vals); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: "saved to " + config.ConfigPath(), kind: components.StatusInfo}
	}
}
