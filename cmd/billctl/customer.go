package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customers",
}

var customerImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import customers from a CSV file",
	Long: `Reads a ';' or ',' separated file in UTF-8, UTF-16 or a Windows code page.
The header row needs a company name column (companyName, Razón social, Company...);
taxId, address, email and phone columns are optional. Rows duplicating an existing
customer by tax id, or by company name when no tax id is given, are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orgID, err := organizationID(cmd)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening file: %w", err)
		}
		defer f.Close()

		result, err := current.app.Importer.ImportCustomers(cmd.Context(), orgID, f)
		if err != nil {
			return err
		}

		cmd.Printf("imported %d, skipped %d, conflicts %d\n", len(result.Imported), result.Skipped, len(result.Conflicts))

		for _, c := range result.Conflicts {
			cmd.Printf("  %q already exists as %q (%s)\n", c.Incoming.CompanyName, c.Existing.CompanyName, c.Existing.ID)
		}

		return nil
	},
}

func init() {
	customerCmd.AddCommand(customerImportCmd)
}
