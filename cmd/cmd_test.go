package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/finnova/internal/config"
	"github.com/theirongolddev/finnova/internal/ledger"
	"github.com/theirongolddev/finnova/internal/store"
)

// isolate points config and data at a temp dir and returns the data file.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(config.EnvDataFile, "")
	t.Setenv(config.EnvBackend, "")
	t.Setenv(config.EnvCurrency, "")
	return filepath.Join(dir, "data.json")
}

func resetFlags() {
	flagDataFile, flagBackend = "", ""
	flagVerbose, flagQuiet = false, false
	flagExpenseCategory = ""
	flagGoalID = false
	flagLimit = ledger.RecentLimit
	flagFrom, flagTo = "", ""
	flagOutput = ""
	flagDays = 14
}

func run(t *testing.T, data string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--quiet", "--data-file", data}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func mustRun(t *testing.T, data string, args ...string) string {
	t.Helper()
	out, _, err := run(t, data, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

func loadDoc(t *testing.T, data string) ledger.Snapshot {
	t.Helper()
	svc := ledger.NewService(store.NewJSONFile(data, nil))
	snap, err := svc.Snapshot(context.Background(), 0)
	if err != nil {
		t.Fatalf("loading %s: %v", data, err)
	}
	return snap
}

func TestExpenseFlow(t *testing.T) {
	data := isolate(t)

	mustRun(t, data, "category", "add", "Food")
	mustRun(t, data, "budget", "set", "Food", "20")
	mustRun(t, data, "income", "add", "1000", "march", "salary")

	out, errOut, err := run(t, data, "expense", "add", "12,5", "-c", "Food", "lunch")
	if err != nil {
		t.Fatalf("expense add: %v", err)
	}
	if !strings.Contains(out, "Added expense") {
		t.Errorf("stdout = %q", out)
	}
	if errOut != "" {
		t.Errorf("unexpected warning %q", errOut)
	}

	_, errOut, err = run(t, data, "expense", "add", "10", "-c", "Food")
	if err != nil {
		t.Fatalf("expense add: %v", err)
	}
	if !strings.Contains(errOut, "over its budget") {
		t.Errorf("stderr = %q, want over-budget warning", errOut)
	}

	snap := loadDoc(t, data)
	if snap.Totals.Income != 1000 || snap.Totals.Expenses != 22.5 {
		t.Errorf("totals = %+v", snap.Totals)
	}
	if snap.Document.Income[0].Description != "march salary" {
		t.Errorf("description = %q", snap.Document.Income[0].Description)
	}
}

func TestExpenseRejectsBadInput(t *testing.T) {
	data := isolate(t)
	mustRun(t, data, "category", "add", "Food")

	if _, _, err := run(t, data, "expense", "add", "-5", "-c", "Food"); err == nil {
		t.Error("negative amount accepted")
	}
	if _, _, err := run(t, data, "expense", "add", "1,000", "-c", "Food"); err == nil {
		t.Error("comma-grouped amount accepted")
	}
	if _, _, err := run(t, data, "expense", "add", "5", "-c", "Travel"); err == nil {
		t.Error("unknown category accepted")
	}

	if snap := loadDoc(t, data); len(snap.Document.Expenses) != 0 {
		t.Errorf("rejected expenses were written: %+v", snap.Document.Expenses)
	}
}

func TestGoalSaveMissIsWarning(t *testing.T) {
	data := isolate(t)
	mustRun(t, data, "goal", "add", "Bike", "500", "2030-01-01")

	info, err := os.Stat(data)
	if err != nil {
		t.Fatal(err)
	}
	before := info.ModTime()

	_, errOut, err := run(t, data, "goal", "save", "Car", "50")
	if err != nil {
		t.Fatalf("miss returned error: %v", err)
	}
	if !strings.Contains(errOut, "no goal named") {
		t.Errorf("stderr = %q", errOut)
	}
	info, err = os.Stat(data)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(before) {
		t.Error("data file rewritten on a goal miss")
	}

	mustRun(t, data, "goal", "save", "Bike", "125")
	snap := loadDoc(t, data)
	if got := snap.Goals[0].SavedAmount; got != 125 {
		t.Errorf("saved = %v, want 125", got)
	}

	out := mustRun(t, data, "goal", "list")
	if !strings.Contains(out, "Bike") || !strings.Contains(out, "25.0%") {
		t.Errorf("goal list = %q", out)
	}
}

func TestCategoryRenameMovesBudget(t *testing.T) {
	data := isolate(t)
	mustRun(t, data, "category", "add", "Food")
	mustRun(t, data, "budget", "set", "Food", "300")
	mustRun(t, data, "category", "rename", "Food", "Groceries")

	snap := loadDoc(t, data)
	if snap.Document.Budget["Groceries"] != 300 {
		t.Errorf("budget = %v", snap.Document.Budget)
	}
	if _, ok := snap.Document.Budget["Food"]; ok {
		t.Error("old budget key kept")
	}

	mustRun(t, data, "category", "rm", "Groceries")
	snap = loadDoc(t, data)
	if len(snap.Document.Categories) != 0 || len(snap.Document.Budget) != 0 {
		t.Errorf("category not removed: %+v %+v", snap.Document.Categories, snap.Document.Budget)
	}
}

func TestRecentRangeAndLimit(t *testing.T) {
	data := isolate(t)
	seed := `{"income": [
		{"timestamp": "2024-01-01 09:00:00", "amount": 1, "description": "first"},
		{"timestamp": "2024-01-05 09:00:00", "amount": 2, "description": "second"},
		{"timestamp": "2024-01-09 09:00:00", "amount": 3, "description": "third"}
	], "expenses": [], "categories": [], "budget": {}, "goals": []}`
	if err := os.WriteFile(data, []byte(seed), 0o600); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, data, "recent", "-n", "2")
	if !strings.Contains(out, "third") || !strings.Contains(out, "second") || strings.Contains(out, "first") {
		t.Errorf("recent -n 2 = %q", out)
	}

	out = mustRun(t, data, "recent", "--from", "2024-01-02", "--to", "2024-01-05")
	if !strings.Contains(out, "second") || strings.Contains(out, "third") || strings.Contains(out, "first") {
		t.Errorf("recent range = %q", out)
	}

	if _, _, err := run(t, data, "recent", "--from", "2024-02-01", "--to", "2024-01-01"); err == nil {
		t.Error("inverted range accepted")
	}
}

func TestExportCSV(t *testing.T) {
	data := isolate(t)
	mustRun(t, data, "category", "add", "Food")
	mustRun(t, data, "expense", "add", "7.25", "-c", "Food")

	path := filepath.Join(t.TempDir(), "out.csv")
	mustRun(t, data, "export", "csv", "-o", path)

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[1][1] != "Food" || rows[1][2] != "7.25" || rows[1][3] != "Expense" {
		t.Errorf("row = %v", rows[1])
	}
}

func TestExportChartNoData(t *testing.T) {
	data := isolate(t)
	path := filepath.Join(t.TempDir(), "pie.png")

	if _, _, err := run(t, data, "export", "chart", "pie", "-o", path); err == nil {
		t.Fatal("empty chart accepted")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty chart file left behind")
	}
}

func TestSummaryOnFreshInstall(t *testing.T) {
	data := isolate(t)

	out := mustRun(t, data)
	if !strings.Contains(out, "FINANCE SUMMARY") || !strings.Contains(out, "Nothing recorded yet") {
		t.Errorf("summary = %q", out)
	}
	if _, err := os.Stat(data); err != nil {
		t.Errorf("default document not created: %v", err)
	}
}

func TestMemoryBackendRejected(t *testing.T) {
	data := isolate(t)

	_, _, err := run(t, data, "--backend", "memory", "income", "add", "42")
	if err == nil || !strings.Contains(err.Error(), "does not persist") {
		t.Fatalf("err = %v, want memory backend rejected", err)
	}
	if _, err := os.Stat(data); !os.IsNotExist(err) {
		t.Error("rejected command touched the data file")
	}
}

func TestExportPDF(t *testing.T) {
	data := isolate(t)
	mustRun(t, data, "income", "add", "500", "salary")

	path := filepath.Join(t.TempDir(), "report.pdf")
	mustRun(t, data, "export", "pdf", "-o", path, "--from", "2000-01-01")

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("export is not a PDF: %q", out[:min(len(out), 16)])
	}
}

func TestSQLiteBackend(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "finnova.db")

	mustRun(t, db, "--backend", "sqlite", "income", "add", "42")
	out := mustRun(t, db, "--backend", "sqlite", "recent")
	if !strings.Contains(out, "42.00") {
		t.Errorf("recent = %q", out)
	}
}
