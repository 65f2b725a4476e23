package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/billkerfy/internal/events"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Follow invoice status changes published to the broker",
	Long:  "Binds a temporary queue to AMQP_EXCHANGE with AMQP_ROUTING_KEY and prints every message until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client := current.app.Events()
		if client == nil {
			return errors.New("events are disabled: set AMQP_URL")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err := client.Consume(ctx, func(m *events.StatusChangedMessage) error {
			cmd.Printf("%s  %s  %s -> %s\n", m.ChangedAt.Format(time.DateTime), m.InvoiceID, m.From, m.To)
			return nil
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}

		return err
	},
}
