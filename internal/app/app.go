// Package app wires stores, services and the workspace cache from configuration.
// Every binary under cmd/ builds its dependencies through New.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/billkerfy/internal/billing"
	"github.com/MrJamesThe3rd/billkerfy/internal/config"
	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
	customerStore "github.com/MrJamesThe3rd/billkerfy/internal/customer/store"
	"github.com/MrJamesThe3rd/billkerfy/internal/dashboard"
	"github.com/MrJamesThe3rd/billkerfy/internal/document"
	"github.com/MrJamesThe3rd/billkerfy/internal/events"
	"github.com/MrJamesThe3rd/billkerfy/internal/importer"
	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/billkerfy/internal/invoice/store"
	"github.com/MrJamesThe3rd/billkerfy/internal/locale"
	"github.com/MrJamesThe3rd/billkerfy/internal/organization"
	orgStore "github.com/MrJamesThe3rd/billkerfy/internal/organization/store"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

type App struct {
	Organizations *organization.Service
	Customers     *customer.Service
	Invoices      *invoice.Service
	Workspace     *workspace.Workspace
	Dashboard     *dashboard.Service
	Billing       *billing.Service
	Documents     *document.Service
	Importer      *importer.Service
	Labels        *locale.Labels

	events *events.Client
}

// InvoiceOptions translates the invoice section of cfg into service options.
// notifier may be nil.
func InvoiceOptions(cfg *config.Config, notifier invoice.Notifier) []invoice.Option {
	var opts []invoice.Option

	if cfg.Invoice.StrictTransitions {
		opts = append(opts, invoice.WithPolicy(invoice.Strict{}))
	}

	if notifier != nil {
		opts = append(opts, invoice.WithNotifier(notifier))
	}

	return opts
}

func New(cfg *config.Config, db *sql.DB) (*App, error) {
	numbers, err := invoice.NewNumberGenerator(cfg.Invoice.NumberPrefix, cfg.Invoice.NodeID)
	if err != nil {
		return nil, fmt.Errorf("creating number generator: %w", err)
	}

	a := &App{Labels: locale.Match(cfg.App.Locale)}

	var notifier invoice.Notifier

	if cfg.Broker.URL != "" {
		client, err := events.Dial(cfg.Broker.URL, cfg.Broker.Exchange, cfg.Broker.RoutingKey)
		if err != nil {
			return nil, fmt.Errorf("connecting to broker: %w", err)
		}

		a.events = client
		notifier = client

		slog.Info("publishing invoice status changes", "exchange", cfg.Broker.Exchange, "routing_key", cfg.Broker.RoutingKey)
	}

	a.Organizations = organization.NewService(orgStore.New(db), cfg.Invoice.DefaultCurrency)
	a.Customers = customer.NewService(customerStore.New(db))
	a.Invoices = invoice.NewService(invoiceStore.New(db), numbers, InvoiceOptions(cfg, notifier)...)

	a.Workspace = workspace.New(a.Organizations, a.Customers, a.Invoices)
	a.Dashboard = dashboard.NewService(a.Workspace, a.Labels)
	a.Billing = billing.NewService(a.Workspace, a.Labels)
	a.Documents = document.NewService(a.Invoices, a.Workspace)
	a.Importer = importer.NewService(a.Workspace)

	return a, nil
}

// Events returns the broker client, or nil when events are disabled.
func (a *App) Events() *events.Client {
	return a.events
}

// InvalidateOnStatusChange drops the cached snapshot of the organization named
// in msg, so status changes made by other processes show up on the next read.
func (a *App) InvalidateOnStatusChange(msg *events.StatusChangedMessage) error {
	a.Workspace.Invalidate(msg.OrganizationID)

	return nil
}

func (a *App) Close() error {
	if a.events == nil {
		return nil
	}

	return a.events.Close()
}
