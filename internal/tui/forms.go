package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/finnova/internal/cli"
	"github.com/theirongolddev/finnova/internal/config"
	"github.com/theirongolddev/finnova/internal/ledger"
	"github.com/theirongolddev/finnova/internal/tui/components"
	"github.com/theirongolddev/finnova/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type formKind int

const (
	formNone formKind = iota
	formExpense
	formIncome
	formGoal
	formSavings
	formCategory
	formBudget
)

func (k formKind) title() string {
	switch k {
	case formExpense:
		return "Add Expense"
	case formIncome:
		return "Add Income"
	case formGoal:
		return "New Savings Goal"
	case formSavings:
		return "Add to Goal"
	case formCategory:
		return "New Category"
	case formBudget:
		return "Set Budget"
	default:
		return ""
	}
}

// formValues holds the bound field values of the active form. It lives
// behind a pointer so the bindings survive App copies.
type formValues struct {
	Category    string
	Amount      string
	Description string
	Name        string
	Deadline    string
	GoalID      string
}

func validAmount(s string) error {
	_, err := ledger.ParseAmount(s)
	return err
}

func validBudget(s string) error {
	_, err := ledger.ParseBudget(s)
	return err
}

func validDate(s string) error {
	_, err := ledger.ParseDate(s)
	return err
}

func validName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	return nil
}

// openForm builds and focuses the form for kind. Forms that pick from
// categories or goals refuse to open when there is nothing to pick.
func (a App) openForm(kind formKind) (tea.Model, tea.Cmd) {
	vals := &formValues{}
	var fields []huh.Field

	switch kind {
	case formExpense:
		if len(a.snap.Categories) == 0 {
			a.setStatus("add a category first (c)", components.StatusWarn)
			return a, nil
		}
		vals.Category = a.snap.Categories[0]
		fields = []huh.Field{
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(a.snap.Categories...)...).
				Value(&vals.Category),
			huh.NewInput().Title("Amount").Placeholder("0.00").Validate(validAmount).Value(&vals.Amount),
			huh.NewInput().Title("Description").Value(&vals.Description),
		}

	case formIncome:
		fields = []huh.Field{
			huh.NewInput().Title("Amount").Placeholder("0.00").Validate(validAmount).Value(&vals.Amount),
			huh.NewInput().Title("Description").Value(&vals.Description),
		}

	case formGoal:
		fields = []huh.Field{
			huh.NewInput().Title("Goal name").Validate(validName).Value(&vals.Name),
			huh.NewInput().Title("Target amount").Placeholder("0.00").Validate(validAmount).Value(&vals.Amount),
			huh.NewInput().Title("Deadline").Placeholder("YYYY-MM-DD").Validate(validDate).Value(&vals.Deadline),
		}

	case formSavings:
		if len(a.snap.Goals) == 0 {
			a.setStatus("add a goal first (g)", components.StatusWarn)
			return a, nil
		}
		opts := make([]huh.Option[string], len(a.snap.Goals))
		for i, g := range a.snap.Goals {
			opts[i] = huh.NewOption(g.Name, g.ID)
		}
		if sel, ok := a.selectedGoal(); ok {
			vals.GoalID = sel.ID
		}
		fields = []huh.Field{
			huh.NewSelect[string]().Title("Goal").Options(opts...).Value(&vals.GoalID),
			huh.NewInput().Title("Amount saved").Placeholder("0.00").Validate(validAmount).Value(&vals.Amount),
		}

	case formCategory:
		fields = []huh.Field{
			huh.NewInput().Title("Category name").Validate(validName).Value(&vals.Name),
		}

	case formBudget:
		if len(a.snap.Categories) == 0 {
			a.setStatus("add a category first (c)", components.StatusWarn)
			return a, nil
		}
		vals.Category = a.snap.Categories[0]
		fields = []huh.Field{
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(a.snap.Categories...)...).
				Value(&vals.Category),
			huh.NewInput().Title("Monthly budget").Placeholder("0.00").Validate(validBudget).Value(&vals.Amount),
		}

	default:
		return a, nil
	}

	a.formKind = kind
	a.formVals = vals
	a.form = huh.NewForm(huh.NewGroup(fields...).Title(kind.title())).
		WithShowHelp(true).
		WithWidth(a.formWidth())
	a.setStatus("", components.StatusInfo)
	return a, a.form.Init()
}

func (a App) formWidth() int {
	return max(min(a.contentWidth()-8, 60), 30)
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		a.closeForm()
		a.setStatus("cancelled", components.StatusInfo)
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		submit := submitFormCmd(a.svc, a.cfg, a.formKind, *a.formVals)
		a.closeForm()
		return a, submit
	case huh.StateAborted:
		a.closeForm()
		a.setStatus("cancelled", components.StatusInfo)
		return a, nil
	}
	return a, cmd
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	a.formVals = nil
}

func (a App) viewForm(cw, h int) string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	card := cardStyle.Render(a.form.View())
	return lipgloss.Place(cw, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// submitFormCmd applies a completed form through the service. Values were
// validated by the form fields; the service validates again.
func submitFormCmd(svc *ledger.Service, cfg config.Config, kind formKind, v formValues) tea.Cmd {
	return func() tea.Msg {
		return applyForm(context.Background(), svc, cfg, kind, v)
	}
}

func applyForm(ctx context.Context, svc *ledger.Service, cfg config.Config, kind formKind, v formValues) opDoneMsg {
	money := func(x float64) string { return cli.FormatMoney(cfg.Display.Currency, x) }

	switch kind {
	case formExpense:
		amount, err := ledger.ParseAmount(v.Amount)
		if err != nil {
			return opDoneMsg{err: err}
		}
		rec, over, err := svc.AddExpense(ctx, amount, v.Category, strings.TrimSpace(v.Description))
		if err != nil {
			return opDoneMsg{err: err}
		}
		if over && cfg.Budget.WarnOverBudget {
			return opDoneMsg{
				status: fmt.Sprintf("%s is over budget after %s", rec.Category, money(rec.Amount)),
				kind:   components.StatusWarn,
			}
		}
		return opDoneMsg{status: fmt.Sprintf("expense %s added to %s", money(rec.Amount), rec.Category)}

	case formIncome:
		amount, err := ledger.ParseAmount(v.Amount)
		if err != nil {
			return opDoneMsg{err: err}
		}
		rec, err := svc.AddIncome(ctx, amount, strings.TrimSpace(v.Description))
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: "income " + money(rec.Amount) + " added"}

	case formGoal:
		target, err := ledger.ParseAmount(v.Amount)
		if err != nil {
			return opDoneMsg{err: err}
		}
		g, err := svc.AddGoal(ctx, v.Name, target, strings.TrimSpace(v.Deadline))
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: fmt.Sprintf("goal %q added", g.Name)}

	case formSavings:
		amount, err := ledger.ParseAmount(v.Amount)
		if err != nil {
			return opDoneMsg{err: err}
		}
		found, err := svc.UpdateGoalSavingsByID(ctx, v.GoalID, amount)
		if err != nil {
			return opDoneMsg{err: err}
		}
		if !found {
			return opDoneMsg{status: "goal not found", kind: components.StatusWarn}
		}
		return opDoneMsg{status: money(amount) + " saved"}

	case formCategory:
		name, err := svc.AddCategory(ctx, v.Name)
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: fmt.Sprintf("category %q added", name)}

	case formBudget:
		amount, err := ledger.ParseBudget(v.Amount)
		if err != nil {
			return opDoneMsg{err: err}
		}
		if err := svc.SetBudget(ctx, v.Category, amount); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: fmt.Sprintf("budget for %s set to %s", v.Category, money(amount))}
	}
	return opDoneMsg{}
}
