package main

import (
	"github.com/aussiebroadwan/sessiond/internal/auth/app"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply all pending migrations to the sqlite credential store.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	cmd.Println("Running migrations...")
	st, err := app.OpenStore(cfg.DatabaseFile)
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("database", cfg.DatabaseFile).Wrap(err)
	}
	defer st.Close()

	cmd.Println("Migrations completed successfully")
	return nil
}
