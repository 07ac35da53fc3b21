// Package tui provides the interactive Bubble Tea dashboard for finnova.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/finnova/internal/config"
	"github.com/theirongolddev/finnova/internal/ledger"
	"github.com/theirongolddev/finnova/internal/model"
	"github.com/theirongolddev/finnova/internal/tui/components"
	"github.com/theirongolddev/finnova/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// SnapshotMsg is sent when a load of the finance document completes.
type SnapshotMsg struct {
	Snap     ledger.Snapshot
	Err      error
	LoadTime time.Duration
}

// FileChangedMsg is sent when the data file changes on disk.
type FileChangedMsg struct{}

// opDoneMsg reports the outcome of a change submitted through a form.
type opDoneMsg struct {
	status string
	kind   components.StatusKind
	err    error
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	svc          *ledger.Service
	cfg          config.Config
	dataPath     string
	snap         ledger.Snapshot
	transactions []model.Transaction // newest first
	loaded       bool
	loadErr      error
	loadTime     time.Duration
	reloading    bool

	// UI state
	width      int
	height     int
	activeTab  int
	showHelp   bool
	status     string
	statusKind components.StatusKind

	// Per-tab state
	txList   listState
	goalList listState

	// Input form for adding records
	form     *huh.Form
	formKind formKind
	formVals *formValues

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	spinner spinner.Model
	watcher *DataWatcher
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5

	tabOverview     = 0
	tabTransactions = 1
	tabGoals        = 2
	tabBudget       = 3
)

// listState is the cursor and scroll offset of a selectable list.
type listState struct {
	cursor int
	offset int
}

// move shifts the cursor by delta within a list of n rows.
func (l *listState) move(delta, n int) {
	l.cursor += delta
	l.clamp(n)
}

func (l *listState) clamp(n int) {
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// window returns the visible [start, end) range for h rows and remembers
// the offset so the cursor stays on screen.
func (l *listState) window(h, n int) (int, int) {
	if h < 1 {
		h = 1
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+h {
		l.offset = l.cursor - h + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
	return l.offset, min(l.offset+h, n)
}

// NewApp creates the dashboard model. watcher may be nil to disable live
// reload.
func NewApp(svc *ledger.Service, cfg config.Config, dataPath string, watcher *DataWatcher) App {
	theme.SetActive(cfg.Display.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		svc:       svc,
		cfg:       cfg,
		dataPath:  dataPath,
		needSetup: !config.Exists(),
		spinner:   sp,
		watcher:   watcher,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		loadSnapshotCmd(a.svc, a.recentLimit()),
		a.spinner.Tick,
	}
	if a.watcher != nil {
		cmds = append(cmds, waitForChange(a.watcher))
	}
	return tea.Batch(cmds...)
}

func (a App) recentLimit() int {
	if a.cfg.Display.RecentLimit > 0 {
		return a.cfg.Display.RecentLimit
	}
	return ledger.RecentLimit
}

func (a *App) recompute() {
	if a.snap.Document != nil {
		a.transactions = ledger.GetRecentTransactions(a.snap.Document, 0)
	} else {
		a.transactions = nil
	}
	a.txList.clamp(len(a.transactions))
	a.goalList.clamp(len(a.snap.Goals))
}

func (a *App) setStatus(msg string, kind components.StatusKind) {
	a.status = msg
	a.statusKind = kind
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil || a.form != nil {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
			return a, nil
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
			return a, nil
		case tea.MouseButtonLeft:
			// Tab bar is the first line.
			if msg.Y == 0 && msg.Action == tea.MouseActionPress {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.form != nil {
			return a.updateForm(msg)
		}

		if !a.loaded {
			if key == "q" {
				return a, tea.Quit
			}
			return a, nil
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			return a, a.reload()
		case "j", "down":
			a.moveCursor(1)
		case "k", "up":
			a.moveCursor(-1)
		case "home":
			a.moveCursor(-len(a.transactions) - len(a.snap.Goals))
		case "end":
			a.moveCursor(len(a.transactions) + len(a.snap.Goals))
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		case "e":
			return a.openForm(formExpense)
		case "i":
			return a.openForm(formIncome)
		case "g":
			return a.openForm(formGoal)
		case "s":
			return a.openForm(formSavings)
		case "c":
			return a.openForm(formCategory)
		case "b":
			return a.openForm(formBudget)
		default:
			if len(key) == 1 {
				if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case SnapshotMsg:
		first := !a.loaded
		a.loaded = true
		a.reloading = false
		a.loadTime = msg.LoadTime
		if msg.Err != nil {
			a.loadErr = msg.Err
			a.setStatus("load failed", components.StatusError)
			return a, nil
		}
		a.loadErr = nil
		a.snap = msg.Snap
		a.recompute()

		if first && a.needSetup {
			a.setupVals = NewSetupValues(a.cfg)
			a.setupForm = NewSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case FileChangedMsg:
		cmds := []tea.Cmd{waitForChange(a.watcher)}
		if !a.reloading {
			cmds = append(cmds, a.reload())
		}
		return a, tea.Batch(cmds...)

	case opDoneMsg:
		if msg.err != nil {
			a.setStatus(msg.err.Error(), components.StatusError)
			return a, nil
		}
		a.setStatus(msg.status, msg.kind)
		return a, a.reload()

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.) to the active form.
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.form != nil {
		return a.updateForm(msg)
	}

	return a, nil
}

func (a *App) reload() tea.Cmd {
	a.reloading = true
	return loadSnapshotCmd(a.svc, a.recentLimit())
}

// moveCursor moves the selection of the list on the active tab.
func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case tabTransactions:
		a.txList.move(delta, len(a.transactions))
	case tabGoals:
		a.goalList.move(delta, len(a.snap.Goals))
	}
}

// selectedGoal returns the goal under the goals tab cursor.
func (a App) selectedGoal() (ledger.GoalView, bool) {
	if a.goalList.cursor < 0 || a.goalList.cursor >= len(a.snap.Goals) {
		return ledger.GoalView{}, false
	}
	return a.snap.Goals[a.goalList.cursor], true
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		vals := *a.setupVals
		a.needSetup = false
		a.setupForm = nil
		a.cfg = vals.apply(a.cfg)
		theme.SetActive(a.cfg.Display.Theme)
		return a, saveSetupCmd(a.svc, a.cfg, vals)
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  finnova needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ finnova"))
	b.WriteString(subtitleStyle.Render(" · Personal Finance"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading " + filepath.Base(a.dataPath) + "..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

type keyHelp struct{ key, desc string }

var (
	navBindings = []keyHelp{
		{"1 2 3 4", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Move selection"},
		{"home end", "First / Last row"},
	}
	actionBindings = []keyHelp{
		{"e", "Add expense"},
		{"i", "Add income"},
		{"g", "Add savings goal"},
		{"s", "Add to selected goal"},
		{"c", "Add category"},
		{"b", "Set category budget"},
		{"r", "Reload data"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
)

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Highlight).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	writeSection := func(b *strings.Builder, title string, binds []keyHelp) {
		b.WriteString(sectionStyle.Render(title))
		b.WriteString("\n")
		for _, bind := range binds {
			fmt.Fprintf(b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	writeSection(&b, "Navigation", navBindings)
	b.WriteString("\n")
	writeSection(&b, "Actions", actionBindings)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	hints := "e expense · i income · g goal · s save · b budget · ? help"
	source := filepath.Base(a.dataPath)
	if !a.snap.LoadedAt.IsZero() {
		source += " · " + a.snap.LoadedAt.Format("15:04:05")
	}
	statusBar := components.RenderStatusBar(w, hints, source, a.status, a.statusKind)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch {
	case a.form != nil:
		content = a.viewForm(cw, contentH)
	case a.loadErr != nil:
		content = components.ContentCard("Error",
			lipgloss.NewStyle().Foreground(t.Expense).Background(t.Surface).Render(a.loadErr.Error()), cw)
	default:
		switch a.activeTab {
		case tabOverview:
			content = a.renderOverviewTab(cw)
		case tabTransactions:
			content = a.renderTransactionsTab(cw, contentH)
		case tabGoals:
			content = a.renderGoalsTab(cw, contentH)
		case tabBudget:
			content = a.renderBudgetTab(cw)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

func loadSnapshotCmd(svc *ledger.Service, recentLimit int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		snap, err := svc.Snapshot(context.Background(), recentLimit)
		return SnapshotMsg{Snap: snap, Err: err, LoadTime: time.Since(start)}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

// dailyExpenses returns the expense series oldest first.
func dailyExpenses(days []model.DailyTotals) []float64 {
	n := len(days)
	out := make([]float64, n)
	for i, d := range days {
		out[n-1-i] = d.Expenses
	}
	return out
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color
// so gaps between cards keep the theme background.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
