package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stefifm/dashboard/internal/importer"
	invoiceStore "github.com/stefifm/dashboard/internal/invoice/store"
)

func newCustomerCmd(open OpenFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}

	cmd.AddCommand(newCustomerImportCmd(open))

	return cmd
}

func newCustomerImportCmd(open OpenFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Create customers from a CSV file with name, email and optional image_url columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			ctx := cmd.Context()

			db, err := open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			report, err := importer.NewService(invoiceStore.New(db)).Import(ctx, f)

			if report != nil {
				out := cmd.OutOrStdout()
				for _, rowErr := range report.Rejected {
					fmt.Fprintf(out, "skipped %s\n", rowErr.Error())
				}

				fmt.Fprintf(out, "Created %d customers, skipped %d\n", len(report.Created), len(report.Rejected))
			}

			return err
		},
	}
}
