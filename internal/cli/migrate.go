package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stefifm/dashboard/internal/database"
)

func newMigrateCmd(open OpenFunc) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			run := database.Migrate
			if down {
				run = database.Rollback
			}

			applied, err := run(ctx, db)
			if err != nil {
				return err
			}

			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date")
				return nil
			}

			for _, name := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "Roll back the last migration group")

	return cmd
}
