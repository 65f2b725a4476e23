package view

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
)

const dbTimeout = 5 * time.Second

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

var toneColors = map[invoice.Tone]lipgloss.Color{
	invoice.TonePaid:    lipgloss.Color("46"),
	invoice.TonePending: lipgloss.Color("214"),
	invoice.ToneOverdue: lipgloss.Color("196"),
	invoice.ToneDraft:   lipgloss.Color("245"),
}

// FormatDate formats a time.Time into YYYY-MM-DD, or "-" when it holds no date.
func FormatDate(t time.Time) string {
	if !invoice.ValidDate(t) {
		return "-"
	}

	return t.Format(time.DateOnly)
}

// StatusBadge colors a display status by its tone.
func StatusBadge(d invoice.DisplayStatus) string {
	return lipgloss.NewStyle().Foreground(toneColors[d.Tone()]).Render(string(d))
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func boxed(s string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(s)
}
