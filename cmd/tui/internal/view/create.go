package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/money"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

type createState int

const (
	createStateLoading createState = iota
	createStateHeader
	createStateLine
	createStateSaving
	createStateResult
)

// CreateInvoiceModel walks through the invoice header, then one form per line
// item, showing running totals until the operator stops adding lines.
type CreateInvoiceModel struct {
	CommonModel
	workspace *workspace.Workspace
	orgID     uuid.UUID

	state    createState
	form     *huh.Form
	snapshot *workspace.Snapshot
	items    []invoice.LineItem

	header *headerBindings
	line   *lineBindings

	created *invoice.Invoice
	err     error
}

type headerBindings struct {
	customerID uuid.UUID
	issueDate  string
	dueDate    string
	action     invoice.CreateAction
	notes      string
}

type lineBindings struct {
	description string
	quantity    string
	unitPrice   string
	taxRate     string
	another     bool
}

func NewCreateInvoiceModel(ws *workspace.Workspace, orgID uuid.UUID) CreateInvoiceModel {
	return CreateInvoiceModel{workspace: ws, orgID: orgID}
}

func (m CreateInvoiceModel) Title() string { return "Create Invoice" }

func (m CreateInvoiceModel) ShortHelp() string {
	if m.state == createStateResult {
		return "Esc: back to menu"
	}

	return "Navigate form | Esc: cancel"
}

func (m CreateInvoiceModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CreateInvoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	switch msg := msg.(type) {
	case createLoadedMsg:
		if msg.err != nil {
			m.state = createStateResult
			m.err = msg.err

			return m, nil
		}

		if len(msg.snapshot.Customers) == 0 {
			m.state = createStateResult
			m.err = fmt.Errorf("add a customer before creating invoices")

			return m, nil
		}

		m.snapshot = msg.snapshot
		m.form = m.buildHeaderForm()
		m.state = createStateHeader

		return m, m.form.Init()

	case createdMsg:
		m.state = createStateResult
		m.created = msg.invoice
		m.err = msg.err

		return m, nil
	}

	if m.state != createStateHeader && m.state != createStateLine {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == createStateLine {
		item, err := m.line.item()
		if err != nil {
			m.err = err
		} else {
			m.err = nil
			m.items = append(m.items, item)
		}

		if m.line.another || len(m.items) == 0 {
			m.form = m.buildLineForm()
			return m, m.form.Init()
		}

		m.state = createStateSaving

		return m, m.createCmd(m.params())
	}

	m.form = m.buildLineForm()
	m.state = createStateLine

	return m, m.form.Init()
}

func (m *CreateInvoiceModel) buildHeaderForm() *huh.Form {
	today := time.Now().UTC()
	m.header = &headerBindings{
		customerID: m.snapshot.Customers[0].ID,
		issueDate:  today.Format(time.DateOnly),
		dueDate:    today.AddDate(0, 0, 30).Format(time.DateOnly),
		action:     invoice.ActionSaveDraft,
	}

	options := make([]huh.Option[uuid.UUID], 0, len(m.snapshot.Customers))
	for _, c := range m.snapshot.Customers {
		options = append(options, huh.NewOption(c.CompanyName, c.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Title("Customer").
				Options(options...).
				Value(&m.header.customerID),
			huh.NewInput().
				Title("Issue date").
				Value(&m.header.issueDate).
				Validate(validDate),
			huh.NewInput().
				Title("Due date").
				Value(&m.header.dueDate).
				Validate(validDate),
			huh.NewSelect[invoice.CreateAction]().
				Title("Save as").
				Options(
					huh.NewOption("Draft", invoice.ActionSaveDraft),
					huh.NewOption("Issued", invoice.ActionIssue),
					huh.NewOption("Issued and paid", invoice.ActionIssueAndMarkPaid),
				).
				Value(&m.header.action),
			huh.NewText().
				Title("Notes").
				Value(&m.header.notes),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m *CreateInvoiceModel) buildLineForm() *huh.Form {
	m.line = &lineBindings{quantity: "1", taxRate: "21"}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Line %d description", len(m.items)+1)).
				Value(&m.line.description),
			huh.NewInput().
				Title("Quantity").
				Value(&m.line.quantity).
				Validate(validAmount),
			huh.NewInput().
				Title("Unit price").
				Value(&m.line.unitPrice).
				Validate(validAmount),
			huh.NewInput().
				Title("Tax rate %").
				Value(&m.line.taxRate).
				Validate(validAmount),
			huh.NewConfirm().
				Title("Add another line?").
				Value(&m.line.another),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (l *lineBindings) item() (invoice.LineItem, error) {
	quantity, err := money.Parse(l.quantity)
	if err != nil {
		return invoice.LineItem{}, err
	}

	unitPrice, err := money.Parse(l.unitPrice)
	if err != nil {
		return invoice.LineItem{}, err
	}

	taxRate, err := money.Parse(l.taxRate)
	if err != nil {
		return invoice.LineItem{}, err
	}

	return invoice.NewLineItem("", strings.TrimSpace(l.description), quantity, unitPrice, taxRate)
}

func (m CreateInvoiceModel) params() invoice.CreateParams {
	return invoice.CreateParams{
		OrganizationID: m.orgID,
		CustomerID:     m.header.customerID,
		Action:         m.header.action,
		IssueDate:      invoice.ParseDate(m.header.issueDate),
		DueDate:        invoice.ParseDate(m.header.dueDate),
		Notes:          m.header.notes,
		CurrencyCode:   m.snapshot.CurrencyCode(),
		Items:          m.items,
	}
}

func validDate(s string) error {
	if !invoice.ValidDate(invoice.ParseDate(s)) {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

func validAmount(s string) error {
	_, err := money.Parse(s)
	return err
}

func (m CreateInvoiceModel) View() string {
	switch m.state {
	case createStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading customers...")
	case createStateSaving:
		return lipgloss.NewStyle().Padding(2).Render("Saving invoice...")
	case createStateResult:
		return m.viewResult()
	}

	content := m.form.View()
	if m.state == createStateLine {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.viewTotals())
	}

	if m.err != nil {
		content = errorStyle.Render(m.err.Error()) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m CreateInvoiceModel) viewTotals() string {
	code := m.snapshot.CurrencyCode()
	totals := invoice.ComputeTotals(m.items)

	var sb strings.Builder

	for i, line := range invoice.BuildLines(m.items) {
		fmt.Fprintf(&sb, "%d. %s  %s x %s  %s\n", i+1, line.Item.Description,
			strconv.FormatFloat(line.Item.Quantity, 'f', -1, 64),
			money.Format(line.Item.UnitPrice, code),
			money.Format(line.Amounts.Total, code))
	}

	fmt.Fprintf(&sb, "\nSubtotal %s\nTax      %s\nTotal    %s",
		money.Format(totals.Subtotal, code),
		money.Format(totals.Tax, code),
		activeStyle(money.Format(totals.Total, code)),
	)

	return lipgloss.NewStyle().
		Padding(1, 2).
		MarginLeft(2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(sb.String())
}

func (m CreateInvoiceModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(
			errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)",
		)
	}

	inv := m.created

	return lipgloss.NewStyle().Padding(2).Render(
		successStyle.Render(fmt.Sprintf("Created %s for %s (%s)",
			inv.Number, money.Format(inv.Totals.Total, inv.CurrencyCode), inv.Status)) +
			"\n\n(Esc to go back)",
	)
}

// Messages

type createLoadedMsg struct {
	snapshot *workspace.Snapshot
	err      error
}

func (m CreateInvoiceModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := m.workspace.Snapshot(ctx, m.orgID)

		return createLoadedMsg{snapshot: snap, err: err}
	}
}

type createdMsg struct {
	invoice *invoice.Invoice
	err     error
}

func (m CreateInvoiceModel) createCmd(params invoice.CreateParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		inv, err := m.workspace.CreateInvoice(ctx, params)

		return createdMsg{invoice: inv, err: err}
	}
}
