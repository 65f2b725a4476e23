package view

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/document"
	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/money"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

type invoiceListState int

const (
	invoiceStateBrowse invoiceListState = iota
	invoiceStateSearch
	invoiceStateStatus
)

var (
	statusFilters = []invoice.StatusFilter{invoice.FilterAll, invoice.FilterPaid, invoice.FilterPending, invoice.FilterOverdue}
	rangeFilters  = []invoice.RangeFilter{invoice.RangeAll, invoice.Range30d, invoice.Range90d, invoice.RangeYear}
)

type InvoiceListModel struct {
	CommonModel
	workspace *workspace.Workspace
	documents *document.Service
	orgID     uuid.UUID

	state  invoiceListState
	table  table.Model
	search textinput.Model
	form   *huh.Form
	rows   []invoice.Row

	statusIdx int
	rangeIdx  int

	loading bool
	err     error
	status  string

	formStatus *invoice.Status
}

func NewInvoiceListModel(ws *workspace.Workspace, docs *document.Service, orgID uuid.UUID) InvoiceListModel {
	columns := []table.Column{
		{Title: "Number", Width: 16},
		{Title: "Customer", Width: 28},
		{Title: "Issued", Width: 12},
		{Title: "Due", Width: 12},
		{Title: "Total", Width: 16},
		{Title: "Status", Width: 10},
	}

	ti := textinput.New()
	ti.Placeholder = "number or customer"
	ti.Width = 30

	return InvoiceListModel{
		workspace: ws,
		documents: docs,
		orgID:     orgID,
		table:     newTable(columns, 15),
		search:    ti,
		loading:   true,
	}
}

func (m InvoiceListModel) Title() string { return "Invoices" }

func (m InvoiceListModel) ShortHelp() string {
	switch m.state {
	case invoiceStateSearch:
		return "Enter: apply | Esc: clear"
	case invoiceStateStatus:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | s: status | d: range | /: search | e: set status | o: open document | r: reload"
}

func (m InvoiceListModel) Init() tea.Cmd {
	return m.loadCmd(false)
}

func (m InvoiceListModel) filter() invoice.ListFilter {
	return invoice.ListFilter{
		Status: statusFilters[m.statusIdx],
		Range:  rangeFilters[m.rangeIdx],
		Query:  m.search.Value(),
	}
}

func (m InvoiceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		m.err = msg.err
		m.rows = msg.rows
		m.refreshTable()

		return m, nil

	case invoiceActionMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = invoiceStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd(false)

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case invoiceStateSearch:
		return m.updateSearch(msg)
	case invoiceStateStatus:
		return m.updateStatus(msg)
	}

	return m.updateBrowse(msg)
}

func (m InvoiceListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd(true)
		case "s":
			m.statusIdx = (m.statusIdx + 1) % len(statusFilters)
			return m, m.loadCmd(false)
		case "d":
			m.rangeIdx = (m.rangeIdx + 1) % len(rangeFilters)
			return m, m.loadCmd(false)
		case "/":
			m.state = invoiceStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "e":
			return m.enterStatusMode()
		case "o":
			if inv := m.selected(); inv != nil {
				return m, m.writeDocumentCmd(inv)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoiceListModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			fallthrough
		case tea.KeyEnter:
			m.state = invoiceStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, m.loadCmd(false)
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m InvoiceListModel) selected() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	return m.rows[idx].Invoice
}

func (m InvoiceListModel) enterStatusMode() (tea.Model, tea.Cmd) {
	inv := m.selected()
	if inv == nil {
		return m, nil
	}

	current := inv.Status
	m.formStatus = &current
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[invoice.Status]().
				Key("status").
				Title("Status of "+inv.Number).
				Options(
					huh.NewOption("Draft", invoice.StatusDraft),
					huh.NewOption("Issued", invoice.StatusIssued),
					huh.NewOption("Paid", invoice.StatusPaid),
					huh.NewOption("Void", invoice.StatusVoid),
				).
				Value(m.formStatus),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = invoiceStateStatus
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoiceListModel) updateStatus(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = invoiceStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.updateStatusCmd(m.selected(), *m.formStatus)
}

func (m InvoiceListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	header := fmt.Sprintf(
		"[s] Status: %s | [d] Range: %s | [/] Search: %s",
		activeStyle(string(statusFilters[m.statusIdx])),
		activeStyle(string(rangeFilters[m.rangeIdx])),
		m.search.View(),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
		helpStyle.Render(m.ShortHelp()),
	)

	if m.state == invoiceStateStatus && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *InvoiceListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, row := range m.rows {
		inv := row.Invoice
		rows = append(rows, table.Row{
			inv.Number,
			row.CustomerName,
			FormatDate(inv.IssueDate),
			FormatDate(inv.DueDate),
			money.Format(inv.Totals.Total, inv.CurrencyCode),
			string(row.Display),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadInvoicesMsg struct {
	rows []invoice.Row
	err  error
}

func (m InvoiceListModel) loadCmd(reload bool) tea.Cmd {
	filter := m.filter()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		load := m.workspace.Snapshot
		if reload {
			load = m.workspace.Reload
		}

		snap, err := load(ctx, m.orgID)
		if err != nil {
			return loadInvoicesMsg{err: err}
		}

		return loadInvoicesMsg{rows: invoice.Filter(snap.Invoices, snap.CustomerNames(), filter, time.Now().UTC())}
	}
}

type invoiceActionMsg struct {
	status string
	err    error
}

func (m InvoiceListModel) updateStatusCmd(inv *invoice.Invoice, status invoice.Status) tea.Cmd {
	if inv == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.workspace.UpdateInvoiceStatus(ctx, inv.ID, status)
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{status: fmt.Sprintf("%s is now %s", updated.Number, updated.Status)}
	}
}

func (m InvoiceListModel) writeDocumentCmd(inv *invoice.Invoice) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := os.MkdirAll(exportDir, 0o755); err != nil {
			return invoiceActionMsg{err: err}
		}

		path := filepath.Join(exportDir, document.Filename(inv))

		f, err := os.Create(path)
		if err != nil {
			return invoiceActionMsg{err: err}
		}
		defer f.Close()

		if _, err := m.documents.Render(ctx, f, inv.ID); err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{status: "Wrote " + path}
	}
}
