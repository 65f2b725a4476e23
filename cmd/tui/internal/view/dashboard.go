package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/dashboard"
	"github.com/MrJamesThe3rd/billkerfy/internal/money"
)

const revenueBarWidth = 40

var cardStyle = lipgloss.NewStyle().
	Padding(0, 2).
	MarginRight(1).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63"))

type DashboardModel struct {
	CommonModel
	service *dashboard.Service
	orgID   uuid.UUID

	summary dashboard.Summary
	loading bool
	err     error
}

func NewDashboardModel(svc *dashboard.Service, orgID uuid.UUID) DashboardModel {
	return DashboardModel{service: svc, orgID: orgID, loading: true}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDashboardMsg:
		m.loading = false
		m.err = msg.err
		m.summary = msg.summary

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		renderMetrics(m.summary.Metrics),
		"",
		renderRevenue(m.summary),
		"",
		renderRecent(m.summary.Recent),
		"",
		helpStyle.Render(m.ShortHelp()),
	))
}

func renderMetrics(metrics []dashboard.Metric) string {
	cards := make([]string, 0, len(metrics))
	for _, metric := range metrics {
		arrow := "▲"
		if metric.Trend.Direction == dashboard.Down {
			arrow = "▼"
		}

		cards = append(cards, cardStyle.Render(fmt.Sprintf("%s\n%s\n%s %s",
			helpStyle.Render(metric.Title),
			lipgloss.NewStyle().Bold(true).Render(metric.Value),
			arrow, metric.Trend.Value,
		)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderRevenue(s dashboard.Summary) string {
	var peak float64
	for _, p := range s.Revenue {
		peak = max(peak, p.Amount)
	}

	var sb strings.Builder

	sb.WriteString("Revenue\n")

	for _, p := range s.Revenue {
		width := 0
		if peak > 0 {
			width = int(p.Amount / peak * revenueBarWidth)
		}

		fmt.Fprintf(&sb, "%s %d %s %s\n", p.Label, p.Year,
			activeStyle(strings.Repeat("█", width)), money.Format(p.Amount, s.CurrencyCode))
	}

	return sb.String()
}

func renderRecent(recent []dashboard.Activity) string {
	if len(recent) == 0 {
		return "No invoices yet."
	}

	var sb strings.Builder

	sb.WriteString("Recent activity\n")

	for _, a := range recent {
		fmt.Fprintf(&sb, "%-16s %-28s %14s  %s\n",
			a.Number, a.CustomerName, money.Format(a.Amount, a.CurrencyCode), StatusBadge(a.Status))
	}

	return sb.String()
}

type loadDashboardMsg struct {
	summary dashboard.Summary
	err     error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.service.Summary(ctx, m.orgID)

		return loadDashboardMsg{summary: summary, err: err}
	}
}
