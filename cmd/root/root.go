// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/budget-tracker/internal/config"
	"fjacquet/budget-tracker/internal/container"
	"fjacquet/budget-tracker/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	User       string
	ConfigFile string
}

// DefaultUser is the user id used when --user is not given.
const DefaultUser = "default"

var (
	// Log is the shared logger instance for commands
	Log = logging.Nop()

	// AppConfig is the configuration loaded before any command runs
	AppConfig *config.Config

	// AppContainer holds the wired application dependencies
	AppContainer *container.Container

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{User: DefaultUser}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "budget-tracker",
		Short: "Track spending from bank and UPI SMS alerts, budgets and receipts.",
		Long: `budget-tracker turns transaction SMS alerts from PhonePe, Google Pay, Paytm and
banks into a ledger of accounts and transactions. It skips duplicate alerts,
checks spending against budgets, scans receipts and writes a monthly financial report.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to close application resources")
			}
			AppContainer = nil
		},
	}

	initOnce sync.Once
)

// Init initializes the root command flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file: .csv SMS export or text file with one message per line")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.User, "user", "u", DefaultUser, "User id owning accounts and transactions")
		Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: ./config.yaml or $HOME/.budget-tracker/config.yaml)")
	})
}

func initialize(cmd *cobra.Command, _ []string) error {
	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.Load(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

// GetContainer returns the application container, or an error when the root
// command has not initialized it.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return AppContainer, nil
}

// GetConfig returns the loaded configuration, or nil before initialization.
func GetConfig() *config.Config {
	return AppConfig
}

// GetLogger returns the command logger.
func GetLogger() logging.Logger {
	return Log
}
