package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/money"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "List invoices, change their status and export documents",
}

var listFlags struct {
	status string
	rng    string
	query  string
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices with their derived status",
	Example: `  billctl invoice list --status overdue
  billctl invoice list --range 90d -q acme`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter, err := invoice.ParseListFilter(listFlags.status, listFlags.rng, listFlags.query)
		if err != nil {
			return err
		}

		orgID, err := organizationID(cmd)
		if err != nil {
			return err
		}

		snap, err := current.app.Workspace.Snapshot(cmd.Context(), orgID)
		if err != nil {
			return err
		}

		rows := invoice.Filter(snap.Invoices, snap.CustomerNames(), filter, time.Now().UTC())

		t := newTable("Number", "Customer", "Issued", "Due", "Total", "Status")
		for _, row := range rows {
			inv := row.Invoice
			t.Row(inv.Number, row.CustomerName, shortDate(inv.IssueDate), shortDate(inv.DueDate),
				money.Format(inv.Totals.Total, inv.CurrencyCode), string(row.Display))
		}

		cmd.Println(t.String())

		return nil
	},
}

var invoiceStatusCmd = &cobra.Command{
	Use:     "status <invoice-id> <draft|issued|paid|void>",
	Short:   "Set the status of an invoice",
	Example: "  billctl invoice status 0b7c9a1e-5f39-4b8e-8a57-3d1f2f6c9e10 paid",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid invoice id: %w", err)
		}

		status, err := invoice.ParseStatus(args[1])
		if err != nil {
			return err
		}

		inv, err := current.app.Workspace.UpdateInvoiceStatus(cmd.Context(), id, status)
		if err != nil {
			return err
		}

		cmd.Printf("%s is now %s (%s)\n", inv.Number, inv.Status, inv.Display(time.Now().UTC()))

		return nil
	},
}

var exportOut string

var invoiceExportCmd = &cobra.Command{
	Use:   "export [invoice-id]",
	Short: "Write one invoice document, or a zip of every listed invoice",
	Long: `With an invoice id, writes that invoice as an HTML document into --out.
Without one, writes invoices.zip into --out containing every invoice matching
the list filters, plus a plain-text summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(exportOut, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		if len(args) == 1 {
			return exportOne(cmd, args[0])
		}

		return exportBundle(cmd)
	},
}

func exportOne(cmd *cobra.Command, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid invoice id: %w", err)
	}

	tmp, err := os.CreateTemp(exportOut, ".document-*")
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	name, err := current.app.Documents.Render(cmd.Context(), tmp, id)
	if err != nil {
		return err
	}

	path := filepath.Join(exportOut, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	cmd.Println(path)

	return nil
}

func exportBundle(cmd *cobra.Command) error {
	filter, err := invoice.ParseListFilter(listFlags.status, listFlags.rng, listFlags.query)
	if err != nil {
		return err
	}

	orgID, err := organizationID(cmd)
	if err != nil {
		return err
	}

	path := filepath.Join(exportOut, "invoices.zip")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	n, err := current.app.Documents.Bundle(cmd.Context(), f, orgID, filter)
	if err != nil {
		return err
	}

	cmd.Printf("%s (%d invoices)\n", path, n)

	return nil
}

func shortDate(t time.Time) string {
	if !invoice.ValidDate(t) {
		return "-"
	}

	return t.Format(time.DateOnly)
}

func init() {
	for _, c := range []*cobra.Command{invoiceListCmd, invoiceExportCmd} {
		c.Flags().StringVar(&listFlags.status, "status", "all", "all, paid, pending or overdue")
		c.Flags().StringVar(&listFlags.rng, "range", "all", "all, 30d, 90d or year")
		c.Flags().StringVarP(&listFlags.query, "query", "q", "", "match invoice number or customer name")
	}

	invoiceExportCmd.Flags().StringVar(&exportOut, "out", ".", "output directory")

	invoiceCmd.AddCommand(invoiceListCmd, invoiceStatusCmd, invoiceExportCmd)
}
