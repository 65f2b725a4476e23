package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
	"github.com/MrJamesThe3rd/billkerfy/internal/importer"
)

const importTimeout = 2 * time.Minute

type importStep int

const (
	stepPickFile importStep = iota
	stepUploading
	stepReport
)

// ImportModel picks a customer CSV, imports it and reports what was created
// and which rows collided with existing customers.
type ImportModel struct {
	CommonModel
	importer *importer.Service
	orgID    uuid.UUID

	step     importStep
	picker   filepicker.Model
	file     string
	result   *customer.ImportResult
	err      error
	conflict list.Model
}

func NewImportModel(svc *importer.Service, orgID uuid.UUID) ImportModel {
	picker := filepicker.New()
	picker.CurrentDirectory, _ = os.Getwd()
	picker.AllowedTypes = []string{".csv", ".txt"}
	picker.DirAllowed = false
	picker.FileAllowed = true
	picker.SetHeight(15)

	return ImportModel{importer: svc, orgID: orgID, picker: picker}
}

func (m ImportModel) Title() string { return "Import Customers" }

func (m ImportModel) ShortHelp() string {
	if m.step == stepReport {
		return "↑/↓: conflicts | Enter: import another file | Esc: back"
	}

	return "Enter: select | Esc: back"
}

func (m ImportModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(customersImportedMsg); ok {
		m.step = stepReport
		m.result = done.result
		m.err = done.err
		m.conflict = newConflictList(done.result)

		return m, nil
	}

	key, isKey := msg.(tea.KeyMsg)
	if isKey && key.Type == tea.KeyEsc {
		return m, Back
	}

	switch m.step {
	case stepPickFile:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		if ok, path := m.picker.DidSelectFile(msg); ok {
			m.step = stepUploading
			m.file = path

			return m, m.importCmd(path)
		}

		return m, cmd

	case stepReport:
		if isKey && key.Type == tea.KeyEnter {
			next := NewImportModel(m.importer, m.orgID)
			return next, next.Init()
		}

		var cmd tea.Cmd
		m.conflict, cmd = m.conflict.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ImportModel) View() string {
	var body string

	switch m.step {
	case stepPickFile:
		body = "Choose a CSV with a company name column (companyName, Razón social, Company...):\n\n" + m.picker.View()
	case stepUploading:
		body = fmt.Sprintf("Importing customers from %s...", filepath.Base(m.file))
	case stepReport:
		body = m.viewReport()
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, body, "", helpStyle.Render(m.ShortHelp())),
	)
}

func (m ImportModel) viewReport() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Import of %s failed: %v", filepath.Base(m.file), m.err))
	}

	names := make([]string, 0, len(m.result.Imported))
	for _, c := range m.result.Imported {
		names = append(names, c.CompanyName)
	}

	summary := successStyle.Render(fmt.Sprintf("%d created", len(m.result.Imported)))
	if m.result.Skipped > 0 {
		summary += fmt.Sprintf(", %d blank rows ignored", m.result.Skipped)
	}

	lines := []string{summary}
	if len(names) > 0 {
		lines = append(lines, helpStyle.Render(strings.Join(names, ", ")))
	}

	if len(m.result.Conflicts) > 0 {
		lines = append(lines, "", m.conflict.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

type customersImportedMsg struct {
	result *customer.ImportResult
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return customersImportedMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := m.importer.ImportCustomers(ctx, m.orgID, f)

		return customersImportedMsg{result: result, err: err}
	}
}

func newConflictList(result *customer.ImportResult) list.Model {
	var items []list.Item
	if result != nil {
		items = make([]list.Item, len(result.Conflicts))
		for i, c := range result.Conflicts {
			items[i] = conflictItem(c)
		}
	}

	l := list.New(items, conflictDelegate{}, 80, 16)
	l.Title = fmt.Sprintf("%d rows already exist and were left out", len(items))
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

type conflictItem customer.Conflict

func (c conflictItem) FilterValue() string { return c.Incoming.CompanyName }

// conflictDelegate draws the incoming row above the customer it collided with.
type conflictDelegate struct{}

func (conflictDelegate) Height() int                         { return 2 }
func (conflictDelegate) Spacing() int                        { return 1 }
func (conflictDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (conflictDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, ok := item.(conflictItem)
	if !ok {
		return
	}

	marker := "  "
	if index == m.Index() {
		marker = activeStyle("▌ ")
	}

	fmt.Fprintf(w, "%s%s %s\n%s   matches %s %s",
		marker, c.Incoming.CompanyName, helpStyle.Render(c.Incoming.TaxID),
		marker, c.Existing.CompanyName, helpStyle.Render(c.Existing.ID.String()),
	)
}
