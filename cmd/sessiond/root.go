package main

import (
	"github.com/aussiebroadwan/sessiond/internal/auth/app"
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var databaseFile string

// NewRootCmd creates the root command for the sessiond CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessiond",
		Short: "sessiond - stateless login sessions over HS256 tokens",
		Long: `sessiond authenticates users against a local credential store and hands
out short-lived access tokens plus an HttpOnly refresh cookie. Every setting
is read from the environment; see the README for the full list.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&databaseFile, "db", "", "sqlite database file (overrides DATABASE_FILE)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewUserCmd())
	cmd.AddCommand(NewSecretCmd())

	return cmd
}

// loadConfig reads the environment and applies global flag overrides.
func loadConfig() (app.Config, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return app.Config{}, err
	}
	if databaseFile != "" {
		cfg.DatabaseFile = databaseFile
	}
	return cfg, nil
}
