package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/document"
	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

const (
	exportDir     = "./exports"
	exportTimeout = 2 * time.Minute
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	workspace *workspace.Workspace
	documents *document.Service
	orgID     uuid.UUID

	state   exportState
	err     error
	form    *huh.Form
	spinner spinner.Model
	summary string
	path    string

	bind *exportBindings
}

type exportBindings struct {
	status invoice.StatusFilter
	rng    invoice.RangeFilter
	dir    string
}

func NewExportModel(ws *workspace.Workspace, docs *document.Service, orgID uuid.UUID) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ExportModel{
		workspace: ws,
		documents: docs,
		orgID:     orgID,
		spinner:   s,
		bind:      &exportBindings{status: invoice.FilterAll, rng: invoice.RangeAll, dir: exportDir},
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) Title() string { return "Export Invoices" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd())
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.summary = result.summary
		m.path = result.path

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[invoice.StatusFilter]().
				Title("Status").
				Options(
					huh.NewOption("All", invoice.FilterAll),
					huh.NewOption("Paid", invoice.FilterPaid),
					huh.NewOption("Pending", invoice.FilterPending),
					huh.NewOption("Overdue", invoice.FilterOverdue),
				).
				Value(&m.bind.status),
			huh.NewSelect[invoice.RangeFilter]().
				Title("Issued").
				Options(
					huh.NewOption("All time", invoice.RangeAll),
					huh.NewOption("Last 30 days", invoice.Range30d),
					huh.NewOption("Last 90 days", invoice.Range90d),
					huh.NewOption("This year", invoice.RangeYear),
				).
				Value(&m.bind.rng),
			huh.NewInput().
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder(exportDir).
				Value(&m.bind.dir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Rendering invoice documents...", m.spinner.View()),
		)
	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	header := successStyle.Bold(true).Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			"Written to "+m.path,
			"",
			m.summary,
		),
	)
}

type exportResultMsg struct {
	path    string
	summary string
	err     error
}

func (m ExportModel) runExportCmd() tea.Cmd {
	filter := invoice.ListFilter{Status: m.bind.status, Range: m.bind.rng}
	dir := m.bind.dir

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportResultMsg{err: fmt.Errorf("creating output directory: %w", err)}
		}

		path := filepath.Join(dir, fmt.Sprintf("invoices-%s.zip", time.Now().Format("20060102-150405")))

		f, err := os.Create(path)
		if err != nil {
			return exportResultMsg{err: err}
		}
		defer f.Close()

		if _, err := m.documents.Bundle(ctx, f, m.orgID, filter); err != nil {
			return exportResultMsg{err: err}
		}

		snap, err := m.workspace.Snapshot(ctx, m.orgID)
		if err != nil {
			return exportResultMsg{err: err}
		}

		rows := invoice.Filter(snap.Invoices, snap.CustomerNames(), filter, time.Now().UTC())

		return exportResultMsg{path: path, summary: document.Summary(rows)}
	}
}
