// Package billing groups invoices by customer into lifetime billing figures.
package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/locale"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

// Row is a customer with its billing history summarized.
type Row struct {
	Customer         *customer.Customer
	ContactName      string
	BilledTotal      float64
	FirstInvoiceDate time.Time // zero when the customer has no dated invoices
	CustomerSince    string
}

// Active reports whether the customer has been billed anything.
func (r Row) Active() bool {
	return r.BilledTotal > 0
}

type Report struct {
	CurrencyCode    string
	Rows            []Row
	TotalBilled     float64
	ActiveCustomers int
	NewThisMonth    int
	AverageBilling  float64
}

type group struct {
	total float64
	first time.Time
}

// groupByCustomer sums non-void totals per customer and tracks the earliest valid
// issue date among those same invoices.
func groupByCustomer(invoices []*invoice.Invoice) map[uuid.UUID]group {
	groups := make(map[uuid.UUID]group)

	for _, inv := range invoices {
		if inv.Status == invoice.StatusVoid {
			continue
		}

		g := groups[inv.CustomerID]
		g.total += inv.Totals.Total

		if invoice.ValidDate(inv.IssueDate) && (g.first.IsZero() || inv.IssueDate.Before(g.first)) {
			g.first = inv.IssueDate
		}

		groups[inv.CustomerID] = g
	}

	return groups
}

// Build produces one row per customer of snap, in customer order. AverageBilling is
// zero when no customer has been billed.
func Build(snap *workspace.Snapshot, now time.Time, labels *locale.Labels) Report {
	groups := groupByCustomer(snap.Invoices)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	r := Report{
		CurrencyCode: snap.CurrencyCode(),
		Rows:         make([]Row, len(snap.Customers)),
	}

	for i, c := range snap.Customers {
		g := groups[c.ID]

		row := Row{
			Customer:         c,
			ContactName:      contactName(c.Email, labels),
			BilledTotal:      g.total,
			FirstInvoiceDate: g.first,
			CustomerSince:    labels.CustomerSince(g.first),
		}
		r.Rows[i] = row

		r.TotalBilled += row.BilledTotal

		if row.Active() {
			r.ActiveCustomers++
		}

		if !row.FirstInvoiceDate.IsZero() && !row.FirstInvoiceDate.Before(monthStart) {
			r.NewThisMonth++
		}
	}

	if r.ActiveCustomers > 0 {
		r.AverageBilling = r.TotalBilled / float64(r.ActiveCustomers)
	}

	return r
}

// contactName uses the local part of the customer email.
func contactName(email string, labels *locale.Labels) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	if local == "" {
		return labels.NoContact()
	}

	return local
}

// Search keeps rows whose company name, tax id, email or phone contains query,
// case-insensitively. A blank query keeps every row.
func Search(rows []Row, query string) []Row {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return rows
	}

	var out []Row

	for _, row := range rows {
		c := row.Customer
		for _, field := range []string{c.CompanyName, c.TaxID, c.Email, c.Phone} {
			if strings.Contains(strings.ToLower(field), query) {
				out = append(out, row)
				break
			}
		}
	}

	return out
}

//go:generate mockgen -source=billing.go -destination=source_mock.go -package=billing
type Source interface {
	Snapshot(ctx context.Context, organizationID uuid.UUID) (*workspace.Snapshot, error)
}

type Service struct {
	source Source
	labels *locale.Labels
	now    func() time.Time
}

func NewService(source Source, labels *locale.Labels) *Service {
	return &Service{source: source, labels: labels, now: time.Now}
}

// WithClock returns a copy of s that reads the current time from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	c := *s
	c.now = now

	return &c
}

// Report builds the billing report for the organization, with rows narrowed by query.
// The summary figures always cover every customer.
func (s *Service) Report(ctx context.Context, organizationID uuid.UUID, query string) (Report, error) {
	snap, err := s.source.Snapshot(ctx, organizationID)
	if err != nil {
		return Report{}, err
	}

	r := Build(snap, s.now().UTC(), s.labels)
	r.Rows = Search(r.Rows, query)

	return r, nil
}
