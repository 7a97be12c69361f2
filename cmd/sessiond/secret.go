package main

import (
	"github.com/aussiebroadwan/sessiond/pkg/cryptox"
	"github.com/spf13/cobra"
)

// NewSecretCmd creates the secret subcommand.
func NewSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "secret",
		Short: "Print a random value suitable for SECRET_KEY",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := cryptox.GenerateToken(cryptox.TokenSize512)
			if err != nil {
				return err
			}
			cmd.Println(s)
			return nil
		},
	}
}
