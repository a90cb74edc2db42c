package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"hotel-manager/config"
	"hotel-manager/services/logger"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hotel-manager",
		Short:         "Hotel reservation manager",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		ServeCmd(),
		MigrateCmd(),
		SeedCmd(),
	)
	return rootCmd
}

// Execute runs the CLI; with no subcommand it serves the API
func Execute() {
	rootCmd := NewRootCmd()
	if len(os.Args) == 1 {
		rootCmd.SetArgs([]string{"serve"})
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) (logger.Logger, error) {
	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.LogDir == "" {
		return logger.NewDefaultLogger(level), nil
	}
	return logger.NewFileLogger(level, cfg.LogDir)
}

// openDatabase connects and migrates
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := config.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := config.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}
