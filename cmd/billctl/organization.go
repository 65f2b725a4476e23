package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/billkerfy/internal/organization"
)

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Manage the organizations that issue invoices",
}

var orgListCmd = &cobra.Command{
	Use:   "list",
	Short: "List organizations, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		orgs, err := current.app.Organizations.List(cmd.Context())
		if err != nil {
			return err
		}

		t := newTable("ID", "Name", "Tax ID", "Currency", "Created")
		for _, o := range orgs {
			t.Row(o.ID.String(), o.DisplayName(), o.TaxID, o.CurrencyCode, o.CreatedAt.Format(time.DateOnly))
		}

		cmd.Println(t.String())

		return nil
	},
}

var orgParams organization.CreateParams

var orgCreateCmd = &cobra.Command{
	Use:     "create <legal-name>",
	Short:   "Create an organization",
	Example: `  billctl org create "Acme Consulting SL" --trade-name Acme --tax-id B12345678 --currency EUR`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orgParams.LegalName = args[0]

		org, err := current.app.Organizations.Create(cmd.Context(), orgParams)
		if err != nil {
			return err
		}

		cmd.Printf("created %s (%s)\n", org.DisplayName(), org.ID)

		return nil
	},
}

func init() {
	f := orgCreateCmd.Flags()
	f.StringVar(&orgParams.TradeName, "trade-name", "", "name shown on documents")
	f.StringVar(&orgParams.TaxID, "tax-id", "", "tax identifier")
	f.StringVar(&orgParams.AddressLine1, "address", "", "street address")
	f.StringVar(&orgParams.City, "city", "", "city")
	f.StringVar(&orgParams.Country, "country", "", "country")
	f.StringVar(&orgParams.CurrencyCode, "currency", "", "ISO 4217 code (defaults to INVOICE_DEFAULT_CURRENCY)")

	orgCmd.AddCommand(orgListCmd, orgCreateCmd)
}
