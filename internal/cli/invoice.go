package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stefifm/dashboard/internal/invoice"
	invoiceStore "github.com/stefifm/dashboard/internal/invoice/store"
)

// offline satisfies invoice.Revalidator. Cached views live in the API process and expire
// on their own.
type offline struct{}

func (offline) Revalidate(context.Context, string) {}

func newInvoiceCmd(open OpenFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Manage invoices",
	}

	cmd.AddCommand(newInvoiceDeleteCmd(open))

	return cmd
}

func newInvoiceDeleteCmd(open OpenFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid invoice id %q", args[0])
			}

			ctx := cmd.Context()

			db, err := open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := invoice.NewService(invoiceStore.New(db), offline{})
			if state := svc.DeleteInvoice(ctx, id); state != nil {
				return errors.New(state.Message)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted invoice %s\n", id)

			return nil
		},
	}
}
