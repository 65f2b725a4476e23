package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/billkerfy/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/billkerfy/internal/app"
	"github.com/MrJamesThe3rd/billkerfy/internal/config"
	"github.com/MrJamesThe3rd/billkerfy/internal/database"
	"github.com/MrJamesThe3rd/billkerfy/internal/organization"
)

type model struct {
	app *app.App
	org *organization.Organization

	currentView View

	dashboardView view.DashboardModel
	invoiceView   view.InvoiceListModel
	createView    view.CreateInvoiceModel
	customerView  view.CustomerModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewInvoices  View = 2
	ViewCreate    View = 3
	ViewCustomers View = 4
	ViewImport    View = 5
	ViewExport    View = 6
)

func initialModel() (model, func()) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	a, err := app.New(cfg, db)
	if err != nil {
		slog.Error("failed to initialize services", "error", err)
		os.Exit(1)
	}

	org, err := primaryOrganization(a.Organizations, cfg.Invoice.DefaultCurrency)
	if err != nil {
		slog.Error("failed to resolve organization", "error", err)
		os.Exit(1)
	}

	cleanup := func() {
		a.Close()
		db.Close()
	}

	return model{app: a, org: org, currentView: ViewMenu}, cleanup
}

// primaryOrganization returns the oldest organization, asking for one on first run.
func primaryOrganization(svc *organization.Service, defaultCurrency string) (*organization.Organization, error) {
	ctx := context.Background()

	org, err := svc.Primary(ctx)
	if !errors.Is(err, organization.ErrNotFound) {
		return org, err
	}

	params := organization.CreateParams{CurrencyCode: defaultCurrency}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Welcome to billkerfy").Description("Tell us about the business that issues the invoices."),
			huh.NewInput().Title("Legal name").Value(&params.LegalName).Validate(huh.ValidateNotEmpty()),
			huh.NewInput().Title("Trade name").Value(&params.TradeName),
			huh.NewInput().Title("Tax ID").Value(&params.TaxID),
			huh.NewInput().Title("Address").Value(&params.AddressLine1),
			huh.NewInput().Title("City").Value(&params.City),
			huh.NewInput().Title("Country").Value(&params.Country),
			huh.NewInput().Title("Currency").Value(&params.CurrencyCode),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	return svc.Create(ctx, params)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.app.Dashboard, m.org.ID)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewInvoices
				m.invoiceView = view.NewInvoiceListModel(m.app.Workspace, m.app.Documents, m.org.ID)

				return m, m.invoiceView.Init()
			case "3":
				m.currentView = ViewCreate
				m.createView = view.NewCreateInvoiceModel(m.app.Workspace, m.org.ID)

				return m, m.createView.Init()
			case "4":
				m.currentView = ViewCustomers
				m.customerView = view.NewCustomerModel(m.app.Billing, m.app.Workspace, m.org.ID)

				return m, m.customerView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.app.Importer, m.org.ID)

				return m, m.importView.Init()
			case "6":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.app.Workspace, m.app.Documents, m.org.ID)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoiceView.Update(msg)
		m.invoiceView = newModel.(view.InvoiceListModel)
	case ViewCreate:
		var newModel tea.Model
		newModel, cmd = m.createView.Update(msg)
		m.createView = newModel.(view.CreateInvoiceModel)
	case ViewCustomers:
		var newModel tea.Model
		newModel, cmd = m.customerView.Update(msg)
		m.customerView = newModel.(view.CustomerModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("billkerfy · %s\n\n", m.org.DisplayName()) +
				"1. Dashboard\n" +
				"2. Invoices\n" +
				"3. Create Invoice\n" +
				"4. Customers\n" +
				"5. Import Customers\n" +
				"6. Export Invoices\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewInvoices:
		return m.invoiceView.View()
	case ViewCreate:
		return m.createView.View()
	case ViewCustomers:
		return m.customerView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	m, cleanup := initialModel()

	p := tea.NewProgram(m)
	_, err := p.Run()

	cleanup()

	if err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
