package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/billkerfy/internal/app"
	"github.com/MrJamesThe3rd/billkerfy/internal/config"
	"github.com/MrJamesThe3rd/billkerfy/internal/database"
)

// env holds what every subcommand needs once the root pre-run has succeeded.
type env struct {
	cfg *config.Config
	db  *sql.DB
	app *app.App
}

var (
	current env
	orgFlag string
)

var rootCmd = &cobra.Command{
	Use:   "billctl",
	Short: "Operator CLI for the billkerfy invoicing service",
	Long: `billctl works directly against the billkerfy database. It shares configuration
with the API server: DB_*, INVOICE_*, AMQP_* and APP_LOCALE are read from the
environment or a .env file in the working directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}

		current = env{cfg: cfg, db: db}

		// migrate must run before any service touches the schema.
		if cmd.Name() == migrateCmd.Name() {
			return nil
		}

		a, err := app.New(cfg, db)
		if err != nil {
			return err
		}

		current.app = a

		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if current.app != nil {
			current.app.Close()
		}

		if current.db != nil {
			current.db.Close()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&orgFlag, "org", "o", "", "organization id (defaults to the oldest organization)")

	rootCmd.AddCommand(migrateCmd, orgCmd, dashboardCmd, billingCmd, invoiceCmd, customerCmd, eventsCmd)
}

// organizationID resolves --org, falling back to the primary organization.
func organizationID(cmd *cobra.Command) (uuid.UUID, error) {
	if orgFlag != "" {
		id, err := uuid.Parse(orgFlag)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid --org: %w", err)
		}

		return id, nil
	}

	org, err := current.app.Organizations.Primary(cmd.Context())
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolving organization: %w", err)
	}

	return org.ID, nil
}
