package main

import (
	"bytes"
	"encoding/json"

	"github.com/aussiebroadwan/sessiond/internal/auth/app"
	"github.com/aussiebroadwan/sessiond/internal/auth/domain"
	"github.com/aussiebroadwan/sessiond/internal/auth/service"
	"github.com/aussiebroadwan/sessiond/pkg/cryptox"
	"github.com/aussiebroadwan/sessiond/pkg/validx"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

var registration = validx.MustFor[domain.Registration]()

// NewUserCmd creates the user subcommand group.
func NewUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users in the credential store",
	}
	cmd.AddCommand(newUserAddCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		Long: `Create a user directly in the credential store. When --password is
omitted a random one is generated and printed once.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			generated := false
			if password == "" {
				pw, err := cryptox.GeneratePassword()
				if err != nil {
					return oops.Code("PASSWORD_GENERATION_FAILED").Wrap(err)
				}
				password, generated = pw, true
			}

			// Same rules as POST /users.
			raw, err := json.Marshal(domain.Registration{Name: name, Email: email, Password: password})
			if err != nil {
				return err
			}
			reg, err := registration.Decode(bytes.NewReader(raw))
			if err != nil {
				return oops.Code("INVALID_USER").Wrap(err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return oops.Code("CONFIG_INVALID").Wrap(err)
			}

			st, err := app.OpenStore(cfg.DatabaseFile)
			if err != nil {
				return oops.Code("DB_CONNECT_FAILED").With("database", cfg.DatabaseFile).Wrap(err)
			}
			defer st.Close()

			users := &service.UserService{Store: st, Hasher: cryptox.NewHasher(cfg.PasswordPepper)}
			u, err := users.Register(cmd.Context(), reg)
			if err != nil {
				return oops.Code("USER_CREATE_FAILED").With("email", email).Wrap(err)
			}

			cmd.Printf("Created user %s (%s)\n", u.Email, u.ID)
			if generated {
				cmd.Printf("Password: %s\n", password)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "password (generated when empty)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
