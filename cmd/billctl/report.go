package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/billkerfy/internal/billing"
	"github.com/MrJamesThe3rd/billkerfy/internal/dashboard"
	"github.com/MrJamesThe3rd/billkerfy/internal/money"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the dashboard summary of an organization",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		orgID, err := organizationID(cmd)
		if err != nil {
			return err
		}

		summary, err := current.app.Dashboard.Summary(cmd.Context(), orgID)
		if err != nil {
			return err
		}

		cmd.Println(renderDashboard(summary))

		return nil
	},
}

var billingQuery string

var billingCmd = &cobra.Command{
	Use:   "billing",
	Short: "Print billed totals per customer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		orgID, err := organizationID(cmd)
		if err != nil {
			return err
		}

		report, err := current.app.Billing.Report(cmd.Context(), orgID, billingQuery)
		if err != nil {
			return err
		}

		cmd.Println(renderBilling(report))

		return nil
	},
}

func init() {
	billingCmd.Flags().StringVarP(&billingQuery, "query", "q", "", "filter by company name, tax id, email or phone")
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return lipgloss.NewStyle()
		})
}

func renderDashboard(s dashboard.Summary) string {
	metrics := newTable("Metric", "Value", "Trend")
	for _, m := range s.Metrics {
		metrics.Row(m.Title, m.Value, m.Trend.Value)
	}

	revenue := newTable("Month", "Revenue")
	for _, p := range s.Revenue {
		revenue.Row(fmt.Sprintf("%s %d", p.Label, p.Year), money.Format(p.Amount, s.CurrencyCode))
	}

	recent := newTable("Number", "Customer", "Amount", "Status")
	for _, a := range s.Recent {
		recent.Row(a.Number, a.CustomerName, money.Format(a.Amount, a.CurrencyCode), string(a.Status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, metrics.String(), revenue.String(), recent.String())
}

func renderBilling(r billing.Report) string {
	t := newTable("Customer", "Contact", "Billed", "Since")
	for _, row := range r.Rows {
		t.Row(row.Customer.CompanyName, row.ContactName, money.Format(row.BilledTotal, r.CurrencyCode), row.CustomerSince)
	}

	footer := fmt.Sprintf("Total %s · Active %s · New this month %s · Average %s",
		money.Format(r.TotalBilled, r.CurrencyCode),
		strconv.Itoa(r.ActiveCustomers),
		strconv.Itoa(r.NewThisMonth),
		money.Format(r.AverageBilling, r.CurrencyCode),
	)

	return lipgloss.JoinVertical(lipgloss.Left, t.String(), footer)
}
