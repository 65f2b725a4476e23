package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
	"github.com/MrJamesThe3rd/billkerfy/internal/dashboard"
	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/locale"
	"github.com/MrJamesThe3rd/billkerfy/internal/organization"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func days(n int) time.Time {
	return now.AddDate(0, 0, n)
}

func fixture() *workspace.Snapshot {
	acme := &customer.Customer{ID: uuid.New(), CompanyName: "Acme"}
	globex := &customer.Customer{ID: uuid.New(), CompanyName: "Globex"}
	initech := &customer.Customer{ID: uuid.New(), CompanyName: "Initech"}

	return &workspace.Snapshot{
		Organization: &organization.Organization{CurrencyCode: "EUR"},
		Customers:    []*customer.Customer{acme, globex, initech},
		Invoices: []*invoice.Invoice{
			{Number: "A", CustomerID: acme.ID, Status: invoice.StatusPaid, IssueDate: days(-5), Totals: invoice.Totals{Total: 100}},
			{Number: "B", CustomerID: globex.ID, Status: invoice.StatusIssued, IssueDate: days(-10), DueDate: days(20), Totals: invoice.Totals{Total: 200}},
			{Number: "C", CustomerID: acme.ID, Status: invoice.StatusIssued, IssueDate: days(-45), DueDate: days(-15), Totals: invoice.Totals{Total: 50}},
			{Number: "D", CustomerID: uuid.New(), Status: invoice.StatusVoid, IssueDate: days(-2), Totals: invoice.Totals{Total: 1000}},
			{Number: "E", CustomerID: initech.ID, Status: invoice.StatusDraft, IssueDate: days(-40), Totals: invoice.Totals{Total: 30}},
			{Number: "F", CustomerID: globex.ID, Status: invoice.StatusIssued, Totals: invoice.Totals{Total: 70}},
		},
	}
}

func TestBuild(t *testing.T) {
	s := dashboard.Build(fixture(), now, locale.Match("en"))

	assert.Equal(t, "EUR", s.CurrencyCode)
	assert.InDelta(t, 450, s.TotalBilled, 1e-9)
	assert.Equal(t, 2, s.PendingCount)
	assert.InDelta(t, 270, s.PendingAmount, 1e-9)
	assert.Equal(t, 1, s.OverdueCount)
	assert.InDelta(t, 50, s.OverdueAmount, 1e-9)
	assert.Equal(t, 3, s.CustomerCount)

	require.Len(t, s.Metrics, 4)

	byKey := make(map[dashboard.MetricKey]dashboard.Metric)
	for _, m := range s.Metrics {
		byKey[m.Key] = m
	}

	assert.Equal(t, "€450.00", byKey[dashboard.MetricTotal].Value)
	assert.Equal(t, "+275%", byKey[dashboard.MetricTotal].Trend.Value)
	assert.Equal(t, "€270.00", byKey[dashboard.MetricPending].Value)
	assert.Equal(t, "+0%", byKey[dashboard.MetricPending].Trend.Value)
	assert.Equal(t, "€50.00", byKey[dashboard.MetricOverdue].Value)
	assert.Equal(t, "+0%", byKey[dashboard.MetricOverdue].Trend.Value)
	assert.Equal(t, "3", byKey[dashboard.MetricCustomers].Value)
	assert.Equal(t, "+50%", byKey[dashboard.MetricCustomers].Trend.Value)
}

func TestBuild_TrendWindows(t *testing.T) {
	type testCase struct {
		name        string
		invoices    []*invoice.Invoice
		wantTotal   string
		wantPending string
	}

	// Undated issued invoice: pending, but outside both windows.
	undated := &invoice.Invoice{Number: "U", Status: invoice.StatusIssued}

	paid := func(number string, issued time.Time, total float64) *invoice.Invoice {
		return &invoice.Invoice{Number: number, Status: invoice.StatusPaid, IssueDate: issued, Totals: invoice.Totals{Total: total}}
	}

	tests := []testCase{
		{
			name: "ExactBoundaries",
			invoices: []*invoice.Invoice{
				paid("current-edge", days(-30), 100),
				paid("previous-edge", days(-60), 200),
				paid("too-old", days(-61), 400),
				undated,
			},
			wantTotal:   "-50%",
			wantPending: "+0%",
		},
		{
			name: "JustInsideCurrent",
			invoices: []*invoice.Invoice{
				paid("current", days(-30).Add(time.Second), 300),
				paid("previous", days(-30).Add(-time.Second), 100),
				undated,
			},
			wantTotal:   "+200%",
			wantPending: "+0%",
		},
		{
			name: "NothingInPreviousWindow",
			invoices: []*invoice.Invoice{
				paid("current", days(-1), 50),
				paid("too-old", days(-61), 50),
				undated,
			},
			wantTotal:   "+100%",
			wantPending: "+100%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &workspace.Snapshot{
				Organization: &organization.Organization{CurrencyCode: "EUR"},
				Invoices:     tt.invoices,
			}

			s := dashboard.Build(snap, now, locale.Match("en"))

			byKey := make(map[dashboard.MetricKey]dashboard.Metric)
			for _, m := range s.Metrics {
				byKey[m.Key] = m
			}

			assert.Equal(t, tt.wantTotal, byKey[dashboard.MetricTotal].Trend.Value)
			assert.Equal(t, tt.wantPending, byKey[dashboard.MetricPending].Trend.Value)
		})
	}
}

func TestMonthlyRevenue(t *testing.T) {
	points := dashboard.MonthlyRevenue(fixture().Invoices, now, locale.Match("en"))

	require.Len(t, points, dashboard.SeriesMonths)

	labels := make([]string, len(points))
	amounts := make([]float64, len(points))

	for i, p := range points {
		labels[i] = p.Label
		amounts[i] = p.Amount
	}

	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, labels)
	assert.Equal(t, []float64{0, 0, 0, 0, 80, 300}, amounts)
}

func TestMonthlyRevenue_Empty(t *testing.T) {
	jan := time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)
	points := dashboard.MonthlyRevenue(nil, jan, locale.Match("es"))

	require.Len(t, points, dashboard.SeriesMonths)
	assert.Equal(t, 2025, points[0].Year)
	assert.Equal(t, time.August, points[0].Month)
	assert.Equal(t, "Ago", points[0].Label)
	assert.Equal(t, time.January, points[5].Month)

	for _, p := range points {
		assert.Zero(t, p.Amount)
	}
}

func TestRecentActivity(t *testing.T) {
	snap := fixture()
	feed := dashboard.RecentActivity(snap.Invoices, snap.CustomerNames(), now)

	require.Len(t, feed, dashboard.RecentLimit)

	numbers := make([]string, len(feed))
	for i, a := range feed {
		numbers[i] = a.Number
	}

	assert.Equal(t, []string{"D", "A", "B", "E", "C", "F"}, numbers)
	assert.Equal(t, dashboard.UnnamedCustomer, feed[0].CustomerName)
	assert.Equal(t, invoice.DisplayVoid, feed[0].Status)
	assert.Equal(t, invoice.ToneDraft, feed[0].Tone)
	assert.Equal(t, invoice.DisplayOverdue, feed[4].Status)
	assert.Equal(t, "Acme", feed[4].CustomerName)
}

func TestRecentActivity_Limit(t *testing.T) {
	var invoices []*invoice.Invoice
	for i := range 10 {
		invoices = append(invoices, &invoice.Invoice{Number: string(rune('a' + i)), IssueDate: days(-i)})
	}

	feed := dashboard.RecentActivity(invoices, nil, now)

	require.Len(t, feed, dashboard.RecentLimit)
	assert.Equal(t, "a", feed[0].Number)
	assert.Equal(t, "f", feed[5].Number)
}

func TestService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	org := uuid.New()
	source := dashboard.NewMockSource(ctrl)
	source.EXPECT().Snapshot(gomock.Any(), org).Return(fixture(), nil)
	source.EXPECT().Snapshot(gomock.Any(), org).Return(nil, errors.New("db error"))

	svc := dashboard.NewService(source, locale.Match("en")).WithClock(func() time.Time { return now })

	got, err := svc.Summary(context.Background(), org)
	require.NoError(t, err)
	assert.InDelta(t, 450, got.TotalBilled, 1e-9)

	_, err = svc.Summary(context.Background(), org)
	assert.Error(t, err)
}
