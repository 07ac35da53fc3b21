// Package cmd implements the finnova CLI commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/theirongolddev/finnova/internal/cli"
	"github.com/theirongolddev/finnova/internal/config"
	"github.com/theirongolddev/finnova/internal/ledger"
	"github.com/theirongolddev/finnova/internal/log"
	"github.com/theirongolddev/finnova/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDataFile string
	flagBackend  string
	flagVerbose  bool
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:           "finnova",
	Short:         "Personal finance tracker",
	Long:          "Track income, expenses, category budgets and savings goals from the terminal.",
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, cli.ExpenseStyle.Render("  error: ")+err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataFile, "data-file", "f", "", "Data file (default from config, then "+config.DataDir()+")")
	rootCmd.PersistentFlags().StringVarP(&flagBackend, "backend", "b", "", "Storage backend: json or sqlite")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
}

// loadConfig loads .env, the config file and then the flag overrides.
func loadConfig() (config.Config, error) {
	config.LoadEnvFile()
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataFile != "" {
		cfg.General.DataFile = flagDataFile
	}
	if flagBackend != "" {
		cfg.General.Backend = flagBackend
	}
	return cfg, nil
}

func newLogger() *log.Logger {
	lc := log.DefaultConfig()
	switch {
	case flagVerbose:
		lc.Level = slog.LevelDebug
	case flagQuiet:
		lc.Level = slog.LevelError
	}
	return log.New(lc)
}

// session is the configured ledger for one command run.
type session struct {
	cfg     config.Config
	svc     *ledger.Service
	path    string
	log     *log.Logger
	cleanup store.CleanupFunc
}

// openSession is the shared setup path used by all commands that touch the
// finance document.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	backend, err := store.ParseBackend(cfg.General.Backend)
	if err != nil {
		return nil, err
	}
	// A memory store lives only as long as one command.
	if backend == store.BackendMemory {
		return nil, fmt.Errorf("backend %q does not persist between commands (use %s or %s)",
			backend, store.BackendJSON, store.BackendSQLite)
	}

	logger := newLogger()
	log.SetDefault(logger)
	path := cfg.DataPath()
	logger.Debug("opening store", log.FieldBackend, string(backend), log.FieldPath, path)

	repo, cleanup, err := store.Open(backend, path, logger.WithComponent(log.ComponentStore))
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", backend, err)
	}
	return &session{
		cfg:     cfg,
		svc:     ledger.NewService(repo, ledger.WithLogger(logger)),
		path:    path,
		log:     logger,
		cleanup: cleanup,
	}, nil
}

func (s *session) Close() {
	if err := s.cleanup(); err != nil {
		s.log.Warn("closing store", log.FieldError, err)
	}
}

func (s *session) money(v float64) string {
	return cli.FormatMoney(s.cfg.Display.Currency, v)
}

func (s *session) recentLimit() int {
	if s.cfg.Display.RecentLimit > 0 {
		return s.cfg.Display.RecentLimit
	}
	return ledger.RecentLimit
}
