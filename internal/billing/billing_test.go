package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billkerfy/internal/billing"
	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/locale"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func TestBuild(t *testing.T) {
	acme := &customer.Customer{ID: uuid.New(), CompanyName: "Acme", Email: "jane@acme.test"}
	globex := &customer.Customer{ID: uuid.New(), CompanyName: "Globex"}
	idle := &customer.Customer{ID: uuid.New(), CompanyName: "Idle Ltd"}

	snap := &workspace.Snapshot{
		Customers: []*customer.Customer{acme, globex, idle},
		Invoices: []*invoice.Invoice{
			{CustomerID: acme.ID, Status: invoice.StatusPaid, IssueDate: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), Totals: invoice.Totals{Total: 100}},
			{CustomerID: acme.ID, Status: invoice.StatusIssued, IssueDate: time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC), Totals: invoice.Totals{Total: 50}},
			{CustomerID: acme.ID, Status: invoice.StatusVoid, IssueDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Totals: invoice.Totals{Total: 999}},
			{CustomerID: globex.ID, Status: invoice.StatusIssued, IssueDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Totals: invoice.Totals{Total: 250}},
			{CustomerID: globex.ID, Status: invoice.StatusDraft, Totals: invoice.Totals{Total: 10}},
			{CustomerID: idle.ID, Status: invoice.StatusVoid, IssueDate: time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), Totals: invoice.Totals{Total: 80}},
		},
	}

	r := billing.Build(snap, now, locale.Match("en"))

	require.Len(t, r.Rows, 3)

	assert.InDelta(t, 150, r.Rows[0].BilledTotal, 1e-9)
	assert.Equal(t, time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), r.Rows[0].FirstInvoiceDate)
	assert.Equal(t, "Customer since Feb 26", r.Rows[0].CustomerSince)
	assert.Equal(t, "jane", r.Rows[0].ContactName)

	assert.InDelta(t, 260, r.Rows[1].BilledTotal, 1e-9)
	assert.Equal(t, "No contact", r.Rows[1].ContactName)

	assert.Zero(t, r.Rows[2].BilledTotal)
	assert.True(t, r.Rows[2].FirstInvoiceDate.IsZero())
	assert.Equal(t, "No invoices", r.Rows[2].CustomerSince)

	assert.InDelta(t, 410, r.TotalBilled, 1e-9)
	assert.Equal(t, 2, r.ActiveCustomers)
	assert.Equal(t, 1, r.NewThisMonth)
	assert.InDelta(t, 205, r.AverageBilling, 1e-9)
}

func TestBuild_NoActiveCustomers(t *testing.T) {
	snap := &workspace.Snapshot{
		Customers: []*customer.Customer{{ID: uuid.New(), CompanyName: "Idle"}},
	}

	r := billing.Build(snap, now, locale.Match("en"))

	assert.Zero(t, r.ActiveCustomers)
	assert.Zero(t, r.AverageBilling)
	assert.Equal(t, "EUR", r.CurrencyCode)
}

func TestSearch(t *testing.T) {
	rows := []billing.Row{
		{Customer: &customer.Customer{CompanyName: "Acme", TaxID: "B123", Email: "a@acme.test", Phone: "600111222"}},
		{Customer: &customer.Customer{CompanyName: "Globex", Email: "ops@globex.test"}},
	}

	tests := map[string]int{
		"":          2,
		"  ACME ":   1,
		"b12":       1,
		"globex.te": 1,
		"600":       1,
		".test":     2,
		"nothing":   0,
	}

	for query, want := range tests {
		t.Run(query, func(t *testing.T) {
			assert.Len(t, billing.Search(rows, query), want)
		})
	}
}

func TestService_Report(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	org := uuid.New()
	snap := &workspace.Snapshot{
		Customers: []*customer.Customer{
			{ID: uuid.New(), CompanyName: "Acme"},
			{ID: uuid.New(), CompanyName: "Globex"},
		},
	}

	source := billing.NewMockSource(ctrl)
	source.EXPECT().Snapshot(gomock.Any(), org).Return(snap, nil)

	svc := billing.NewService(source, locale.Match("en")).WithClock(func() time.Time { return now })

	r, err := svc.Report(context.Background(), org, "glob")
	require.NoError(t, err)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, "Globex", r.Rows[0].Customer.CompanyName)
}
