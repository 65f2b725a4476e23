package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/billing"
	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
	"github.com/MrJamesThe3rd/billkerfy/internal/money"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

type customerState int

const (
	customerStateBrowse customerState = iota
	customerStateSearch
	customerStateCreate
	customerStateDelete
)

type CustomerModel struct {
	CommonModel
	billing   *billing.Service
	workspace *workspace.Workspace
	orgID     uuid.UUID

	state  customerState
	table  table.Model
	search textinput.Model
	form   *huh.Form
	report billing.Report

	params  *customer.CreateParams
	confirm *bool

	loading bool
	err     error
	status  string
}

func NewCustomerModel(svc *billing.Service, ws *workspace.Workspace, orgID uuid.UUID) CustomerModel {
	columns := []table.Column{
		{Title: "Company", Width: 30},
		{Title: "Contact", Width: 24},
		{Title: "Tax ID", Width: 14},
		{Title: "Billed", Width: 16},
		{Title: "Since", Width: 18},
	}

	ti := textinput.New()
	ti.Placeholder = "company, tax id, email or phone"
	ti.Width = 34

	return CustomerModel{
		billing:   svc,
		workspace: ws,
		orgID:     orgID,
		table:     newTable(columns, 15),
		search:    ti,
		loading:   true,
	}
}

func (m CustomerModel) Title() string { return "Customers" }

func (m CustomerModel) ShortHelp() string {
	switch m.state {
	case customerStateSearch:
		return "Enter: apply | Esc: clear"
	case customerStateCreate, customerStateDelete:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | /: search | n: new customer | x: delete | r: refresh"
}

func (m CustomerModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CustomerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCustomersMsg:
		m.loading = false
		m.err = msg.err
		m.report = msg.report
		m.refreshTable()

		return m, nil

	case customerActionMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		return m.browse(), m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case customerStateSearch:
		return m.updateSearch(msg)
	case customerStateCreate, customerStateDelete:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m CustomerModel) browse() CustomerModel {
	m.state = customerStateBrowse
	m.form = nil
	m.table.Focus()

	return m
}

func (m CustomerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "/":
			m.state = customerStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "n":
			return m.enterCreateMode()
		case "x":
			return m.enterDeleteMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CustomerModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			fallthrough
		case tea.KeyEnter:
			m.search.Blur()
			return m.browse(), m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m CustomerModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.params = &customer.CreateParams{OrganizationID: m.orgID}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Company name").
				Value(&m.params.CompanyName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return customer.ErrMissingCompanyName
					}
					return nil
				}),
			huh.NewInput().Title("Tax ID").Value(&m.params.TaxID),
			huh.NewInput().Title("Address").Value(&m.params.Address),
			huh.NewInput().Title("Email").Value(&m.params.Email),
			huh.NewInput().Title("Phone").Value(&m.params.Phone),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = customerStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m CustomerModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	row := m.selected()
	if row == nil {
		return m, nil
	}

	m.confirm = new(bool)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete " + row.Customer.CompanyName + "?").
				Description("Their invoices are kept.").
				Value(m.confirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = customerStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m CustomerModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.browse(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == customerStateCreate {
		return m, m.createCmd(*m.params)
	}

	if !*m.confirm {
		return m.browse(), nil
	}

	return m, m.deleteCmd(m.selected().Customer)
}

func (m CustomerModel) selected() *billing.Row {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.report.Rows) {
		return nil
	}

	return &m.report.Rows[idx]
}

func (m CustomerModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading customers...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	r := m.report
	footer := fmt.Sprintf("Total billed %s | Active %s | New this month %s | Average %s",
		activeStyle(money.Format(r.TotalBilled, r.CurrencyCode)),
		activeStyle(fmt.Sprint(r.ActiveCustomers)),
		activeStyle(fmt.Sprint(r.NewThisMonth)),
		activeStyle(money.Format(r.AverageBilling, r.CurrencyCode)),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render("[/] Search: "+m.search.View()),
		boxed(m.table.View()),
		footer,
		helpStyle.Render(m.ShortHelp()),
	)

	if m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CustomerModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.report.Rows))
	for _, row := range m.report.Rows {
		rows = append(rows, table.Row{
			row.Customer.CompanyName,
			row.ContactName,
			row.Customer.TaxID,
			money.Format(row.BilledTotal, m.report.CurrencyCode),
			row.CustomerSince,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadCustomersMsg struct {
	report billing.Report
	err    error
}

func (m CustomerModel) loadCmd() tea.Cmd {
	query := m.search.Value()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		report, err := m.billing.Report(ctx, m.orgID, query)

		return loadCustomersMsg{report: report, err: err}
	}
}

type customerActionMsg struct {
	status string
	err    error
}

func (m CustomerModel) createCmd(params customer.CreateParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.workspace.CreateCustomer(ctx, params)
		if err != nil {
			return customerActionMsg{err: err}
		}

		return customerActionMsg{status: "Created " + c.CompanyName}
	}
}

func (m CustomerModel) deleteCmd(c *customer.Customer) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.workspace.DeleteCustomer(ctx, c.ID); err != nil {
			return customerActionMsg{err: err}
		}

		return customerActionMsg{status: "Deleted " + c.CompanyName}
	}
}
