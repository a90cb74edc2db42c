package commands

import (
	"github.com/spf13/cobra"

	"hotel-manager/config"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			if _, err := openDatabase(cfg); err != nil {
				return err
			}
			log.Info("database migrated (%s)", cfg.DBDriver)
			return nil
		},
	}
}
