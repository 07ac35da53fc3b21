// Package config loads finnova settings from a TOML file, an optional
// .env file and FINNOVA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const appName = "finnova"

// Environment variables that override the config file.
const (
	EnvDataFile = "FINNOVA_DATA_FILE"
	EnvBackend  = "FINNOVA_BACKEND"
	EnvCurrency = "FINNOVA_CURRENCY"
)

// Config holds all finnova configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Display DisplayConfig `toml:"display"`
	Budget  BudgetConfig  `toml:"budget"`
}

// GeneralConfig holds storage settings.
type GeneralConfig struct {
	DataFile string `toml:"data_file,omitempty"`
	Backend  string `toml:"backend"`
}

// DisplayConfig holds presentation preferences.
type DisplayConfig struct {
	Currency    string `toml:"currency"`
	Theme       string `toml:"theme"`
	RecentLimit int    `toml:"recent_limit"`
}

// BudgetConfig holds budget settings.
type BudgetConfig struct {
	WarnOverBudget    bool     `toml:"warn_over_budget"`
	DefaultCategories []string `toml:"default_categories,omitempty"`
}

// DefaultCategories are offered by setup on a fresh install.
var DefaultCategories = []string{"Food", "Transport", "Housing", "Utilities", "Entertainment", "Health"}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Backend: "json",
		},
		Display: DisplayConfig{
			Currency:    "Rs",
			Theme:       "flexoki-dark",
			RecentLimit: 5,
		},
		Budget: BudgetConfig{
			WarnOverBudget: true,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// DataPath returns the document location for cfg, defaulting to a file in
// DataDir named after the backend.
func (c Config) DataPath() string {
	if c.General.DataFile != "" {
		return expandHome(c.General.DataFile)
	}
	if strings.EqualFold(c.General.Backend, "sqlite") {
		return filepath.Join(DataDir(), "finnova.db")
	}
	return filepath.Join(DataDir(), "data.json")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	ApplyEnv(&cfg)
	return cfg, nil
}

// LoadEnvFile loads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// ApplyEnv overrides cfg with any FINNOVA_* variables that are set.
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvDataFile)); v != "" {
		cfg.General.DataFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackend)); v != "" {
		cfg.General.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCurrency)); v != "" {
		cfg.Display.Currency = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
