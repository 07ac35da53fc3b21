package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(EnvDataFile, "")
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvCurrency, "")
	return dir
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.Currency != "Rs" {
		t.Errorf("Currency = %q, want Rs", cfg.Display.Currency)
	}
	if cfg.General.Backend != "json" {
		t.Errorf("Backend = %q, want json", cfg.General.Backend)
	}
	want := filepath.Join(dir, "data", "finnova", "data.json")
	if got := cfg.DataPath(); got != want {
		t.Errorf("DataPath = %q, want %q", got, want)
	}
	if Exists() {
		t.Error("Exists reported a config file that was never written")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	cfg.Display.Currency = "EUR"
	cfg.Display.RecentLimit = 12
	cfg.Budget.DefaultCategories = []string{"Food", "Rent"}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config mode = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Display.Currency != "EUR" || got.Display.RecentLimit != 12 {
		t.Errorf("display = %+v", got.Display)
	}
	if len(got.Budget.DefaultCategories) != 2 {
		t.Errorf("DefaultCategories = %v", got.Budget.DefaultCategories)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvDataFile, "/tmp/finance.db")
	t.Setenv(EnvBackend, "sqlite")
	t.Setenv(EnvCurrency, "$")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataPath() != "/tmp/finance.db" {
		t.Errorf("DataPath = %q", cfg.DataPath())
	}
	if cfg.General.Backend != "sqlite" {
		t.Errorf("Backend = %q", cfg.General.Backend)
	}
	if cfg.Display.Currency != "$" {
		t.Errorf("Currency = %q", cfg.Display.Currency)
	}
}

func TestDataPathSQLiteDefault(t *testing.T) {
	dir := isolate(t)
	cfg := DefaultConfig()
	cfg.General.Backend = "sqlite"
	want := filepath.Join(dir, "data", "finnova", "finnova.db")
	if got := cfg.DataPath(); got != want {
		t.Errorf("DataPath = %q, want %q", got, want)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	isolate(t)
	if err := os.MkdirAll(ConfigDir(), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("[display\ncurrency ="), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Error("Load accepted malformed TOML")
	}
}
