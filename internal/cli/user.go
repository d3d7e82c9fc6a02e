package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stefifm/dashboard/internal/auth"
	"github.com/stefifm/dashboard/internal/auth/credentials"
	authStore "github.com/stefifm/dashboard/internal/auth/store"
)

func newUserCmd(open OpenFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage dashboard users",
	}

	cmd.AddCommand(newUserCreateCmd(open))

	return cmd
}

func newUserCreateCmd(open OpenFunc) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user who can sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)
			if email == "" {
				return errors.New("--email is required")
			}

			if len(password) < 6 {
				return errors.New("--password must be at least 6 characters")
			}

			hash, err := credentials.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}

			ctx := cmd.Context()

			db, err := open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			u := &auth.User{Name: name, Email: email, PasswordHash: hash}
			if err := authStore.New(db).CreateUser(ctx, u); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", u.Email, u.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Sign-in email address")
	cmd.Flags().StringVar(&password, "password", "", "Sign-in password (min 6 characters)")

	return cmd
}
