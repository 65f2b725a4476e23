// Package dashboard aggregates an organization's invoices into the summary
// figures, monthly revenue series and activity feed shown on its dashboard.
package dashboard

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/locale"
	"github.com/MrJamesThe3rd/billkerfy/internal/money"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

const (
	// SeriesMonths is the length of the revenue series, ending at the current month.
	SeriesMonths = 6
	// RecentLimit caps the activity feed.
	RecentLimit = 6
	// UnnamedCustomer stands in for customers missing from the loaded set.
	UnnamedCustomer = "Unnamed customer"

	trendWindow = 30 // days
)

type MetricKey string

const (
	MetricTotal     MetricKey = "total"
	MetricPending   MetricKey = "pending"
	MetricOverdue   MetricKey = "overdue"
	MetricCustomers MetricKey = "customers"
)

// Metric is one summary card. Amount holds the raw number and Value its display form.
type Metric struct {
	Key    MetricKey
	Title  string
	Amount float64
	Value  string
	Trend  Trend
}

type RevenuePoint struct {
	Year   int
	Month  time.Month
	Label  string
	Amount float64
}

type Activity struct {
	InvoiceID    uuid.UUID
	Number       string
	CustomerName string
	Amount       float64
	CurrencyCode string
	Status       invoice.DisplayStatus
	Tone         invoice.Tone
}

type Summary struct {
	CurrencyCode  string
	TotalBilled   float64
	PendingAmount float64
	PendingCount  int
	OverdueAmount float64
	OverdueCount  int
	CustomerCount int
	Metrics       []Metric
	Revenue       []RevenuePoint
	Recent        []Activity
}

// Build computes the dashboard summary for snap at now. It never fails: invoices
// with invalid dates simply drop out of the date-based figures.
func Build(snap *workspace.Snapshot, now time.Time, labels *locale.Labels) Summary {
	currency := snap.CurrencyCode()
	currentStart := now.AddDate(0, 0, -trendWindow)
	previousStart := now.AddDate(0, 0, -2*trendWindow)

	s := Summary{
		CurrencyCode:  currency,
		CustomerCount: len(snap.Customers),
	}

	var currentSum, previousSum float64

	previousCount := 0

	for _, inv := range snap.Invoices {
		switch {
		case invoice.IsOverdue(inv.Status, inv.DueDate, now):
			s.OverdueAmount += inv.Totals.Total
			s.OverdueCount++
		case invoice.IsPending(inv.Status, inv.DueDate, now):
			s.PendingAmount += inv.Totals.Total
			s.PendingCount++
		}

		if inv.Status == invoice.StatusVoid {
			continue
		}

		s.TotalBilled += inv.Totals.Total

		if !invoice.ValidDate(inv.IssueDate) {
			continue
		}

		switch {
		case !inv.IssueDate.Before(currentStart):
			currentSum += inv.Totals.Total
		case !inv.IssueDate.Before(previousStart):
			previousSum += inv.Totals.Total
			previousCount++
		}
	}

	customers := float64(s.CustomerCount)

	s.Metrics = []Metric{
		{
			Key:    MetricTotal,
			Title:  "Total billed",
			Amount: s.TotalBilled,
			Value:  money.Format(s.TotalBilled, currency),
			Trend:  CalculateTrend(currentSum, previousSum),
		},
		{
			Key:    MetricPending,
			Title:  "Pending collection",
			Amount: s.PendingAmount,
			Value:  money.Format(s.PendingAmount, currency),
			Trend:  CalculateTrend(float64(s.PendingCount), float64(previousCount)),
		},
		{
			Key:    MetricOverdue,
			Title:  "Overdue invoices",
			Amount: s.OverdueAmount,
			Value:  money.Format(s.OverdueAmount, currency),
			Trend:  CalculateTrend(float64(s.OverdueCount), max(float64(previousCount)*0.5, 1)),
		},
		{
			Key:    MetricCustomers,
			Title:  "Active customers",
			Amount: customers,
			Value:  strconv.Itoa(s.CustomerCount),
			Trend:  CalculateTrend(customers, max(customers-1, 1)),
		},
	}

	s.Revenue = MonthlyRevenue(snap.Invoices, now, labels)
	s.Recent = RecentActivity(snap.Invoices, snap.CustomerNames(), now)

	return s
}

// MonthlyRevenue sums non-void invoice totals per issue month over the SeriesMonths
// calendar months ending with the month of now, oldest first. Months without
// invoices are present with a zero amount.
func MonthlyRevenue(invoices []*invoice.Invoice, now time.Time, labels *locale.Labels) []RevenuePoint {
	type monthKey struct {
		year  int
		month time.Month
	}

	points := make([]RevenuePoint, SeriesMonths)
	index := make(map[monthKey]int, SeriesMonths)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for i := range SeriesMonths {
		m := first.AddDate(0, i-(SeriesMonths-1), 0)
		points[i] = RevenuePoint{Year: m.Year(), Month: m.Month(), Label: labels.Month(m.Month())}
		index[monthKey{m.Year(), m.Month()}] = i
	}

	for _, inv := range invoices {
		if inv.Status == invoice.StatusVoid || !invoice.ValidDate(inv.IssueDate) {
			continue
		}

		issued := inv.IssueDate.In(now.Location())
		if i, ok := index[monthKey{issued.Year(), issued.Month()}]; ok {
			points[i].Amount += inv.Totals.Total
		}
	}

	return points
}

// RecentActivity returns up to RecentLimit invoices ordered by issue date, newest
// first. Invoices with invalid issue dates sort last; ties keep their input order.
func RecentActivity(invoices []*invoice.Invoice, customerNames map[uuid.UUID]string, now time.Time) []Activity {
	sorted := slices.Clone(invoices)
	slices.SortStableFunc(sorted, func(a, b *invoice.Invoice) int {
		av, bv := invoice.ValidDate(a.IssueDate), invoice.ValidDate(b.IssueDate)
		if av != bv {
			if av {
				return -1
			}

			return 1
		}

		return cmp.Compare(b.IssueDate.UnixNano(), a.IssueDate.UnixNano())
	})

	if len(sorted) > RecentLimit {
		sorted = sorted[:RecentLimit]
	}

	feed := make([]Activity, len(sorted))

	for i, inv := range sorted {
		name, ok := customerNames[inv.CustomerID]
		if !ok {
			name = UnnamedCustomer
		}

		display := inv.Display(now)
		feed[i] = Activity{
			InvoiceID:    inv.ID,
			Number:       inv.Number,
			CustomerName: name,
			Amount:       inv.Totals.Total,
			CurrencyCode: inv.CurrencyCode,
			Status:       display,
			Tone:         display.Tone(),
		}
	}

	return feed
}
