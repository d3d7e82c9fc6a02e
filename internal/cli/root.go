// Package cli implements dashctl, the operator command line for the dashboard database.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/stefifm/dashboard/internal/config"
	"github.com/stefifm/dashboard/internal/database"
)

// OpenFunc returns a connection to the dashboard database.
type OpenFunc func(ctx context.Context) (*sql.DB, error)

func newRootCmd(open OpenFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dashctl",
		Short:         "Manage the invoice dashboard database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newMigrateCmd(open))
	cmd.AddCommand(newUserCmd(open))
	cmd.AddCommand(newInvoiceCmd(open))
	cmd.AddCommand(newCustomerCmd(open))

	return cmd
}

// NewRootCmdForTest returns the root command backed by open.
func NewRootCmdForTest(open OpenFunc) *cobra.Command {
	return newRootCmd(open)
}

func Execute() error {
	return newRootCmd(openFromEnv).Execute()
}

func openFromEnv(ctx context.Context) (*sql.DB, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return database.New(ctx, cfg.ConnectionString())
}
