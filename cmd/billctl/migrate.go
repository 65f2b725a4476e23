package main

import (
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/billkerfy/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := database.Migrate(current.db); err != nil {
			return err
		}

		cmd.Println("database is up to date")

		return nil
	},
}
