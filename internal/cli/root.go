// Package cli implements the qbank CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/qbank/internal/auth"
	"github.com/rcliao/qbank/internal/bank"
	"github.com/rcliao/qbank/internal/config"
	"github.com/rcliao/qbank/internal/logging"
	"github.com/rcliao/qbank/internal/store"
)

var (
	dbPath       string
	configPath   string
	formatFlag   string
	verbose      bool
	passwordFlag string

	cfg    = config.Default()
	logger = zap.NewNop()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "qbank",
	Short: "Offline study question bank",
	Long:  "Browse, search, bookmark and edit exam questions organized by chapter. SQLite-backed, single binary.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c
		if dbPath != "" {
			cfg.DBPath = dbPath
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $QBANK_DB or ~/.qbank/qbank.db)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $QBANK_CONFIG or ~/.qbank/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")
	RootCmd.PersistentFlags().StringVar(&passwordFlag, "password", "", "Admin password for content changes (or $QBANK_ADMIN_PASSWORD)")
}

func openStore() (*store.Store, error) {
	b, err := store.NewSQLiteBackend(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return store.New(b, logger.Named("store")), nil
}

// openBank opens the store and loads the bank. Callers close the store.
func openBank(ctx context.Context) (*bank.Bank, *store.Store, error) {
	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return bank.Open(ctx, s, bank.WithLogger(logger.Named("bank"))), s, nil
}

// requireAdmin checks the admin password from --password or the environment.
func requireAdmin() error {
	gate, err := auth.NewGate(cfg.Admin.PasswordHash)
	if err != nil {
		return err
	}
	pw := passwordFlag
	if pw == "" {
		pw = os.Getenv(config.EnvAdminPassword)
	}
	if err := gate.Check(pw); err != nil {
		logger.Warn("admin check failed")
		return err
	}
	return nil
}
