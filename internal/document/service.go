package document

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/money"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

// SummaryFile is the name of the plain-text index written into every bundle.
const SummaryFile = "summary.txt"

// fetchLimit bounds concurrent invoice loads while building a bundle.
const fetchLimit = 4

//go:generate mockgen -source=service.go -destination=service_mock.go -package=document
type InvoiceGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error)
}

type Source interface {
	Snapshot(ctx context.Context, organizationID uuid.UUID) (*workspace.Snapshot, error)
}

// Service renders single documents and zip bundles.
type Service struct {
	invoices InvoiceGetter
	source   Source
	now      func() time.Time
}

func NewService(invoices InvoiceGetter, source Source) *Service {
	return &Service{
		invoices: invoices,
		source:   source,
		now:      time.Now,
	}
}

// WithClock returns a copy of s that reads the time from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	c := *s
	c.now = now

	return &c
}

// Render writes the HTML document of the invoice with the given id and returns its file name.
func (s *Service) Render(ctx context.Context, w io.Writer, id uuid.UUID) (string, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return "", err
	}

	snap, err := s.source.Snapshot(ctx, inv.OrganizationID)
	if err != nil {
		return "", fmt.Errorf("loading workspace: %w", err)
	}

	doc := Build(snap.Organization, findCustomer(snap.Customers, inv.CustomerID), inv, s.now())
	if err := Render(w, doc); err != nil {
		return "", err
	}

	return Filename(inv), nil
}

// Bundle writes a zip archive with one document per invoice matching filter, plus a
// summary index. It returns the number of documents written.
func (s *Service) Bundle(ctx context.Context, w io.Writer, organizationID uuid.UUID, filter invoice.ListFilter) (int, error) {
	snap, err := s.source.Snapshot(ctx, organizationID)
	if err != nil {
		return 0, fmt.Errorf("loading workspace: %w", err)
	}

	now := s.now()
	rows := invoice.Filter(snap.Invoices, snap.CustomerNames(), filter, now)

	// List results carry no lines, so each invoice is loaded in full.
	full := make([]*invoice.Invoice, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)

	for i, row := range rows {
		g.Go(func() error {
			inv, err := s.invoices.Get(gctx, row.Invoice.ID)
			if err != nil {
				return fmt.Errorf("loading invoice %s: %w", row.Invoice.Number, err)
			}

			full[i] = inv

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	zw := zip.NewWriter(w)

	for _, inv := range full {
		f, err := zw.Create(Filename(inv))
		if err != nil {
			return 0, fmt.Errorf("creating zip entry: %w", err)
		}

		doc := Build(snap.Organization, findCustomer(snap.Customers, inv.CustomerID), inv, now)
		if err := Render(f, doc); err != nil {
			return 0, err
		}
	}

	f, err := zw.Create(SummaryFile)
	if err != nil {
		return 0, fmt.Errorf("creating zip entry: %w", err)
	}

	if _, err := io.WriteString(f, Summary(rows)); err != nil {
		return 0, fmt.Errorf("writing summary: %w", err)
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("closing zip: %w", err)
	}

	return len(full), nil
}

// Summary creates a plain-text index of rows, one invoice per line, ready to paste
// into an email body.
func Summary(rows []invoice.Row) string {
	var sb strings.Builder

	for _, row := range rows {
		inv := row.Invoice

		fmt.Fprintf(&sb, "* %s | %s | %s | %s | %s\n",
			formatDate(inv.IssueDate),
			inv.Number,
			row.CustomerName,
			money.Format(inv.Totals.Total, inv.CurrencyCode),
			row.Display,
		)
	}

	return sb.String()
}

func findCustomer(customers []*customer.Customer, id uuid.UUID) *customer.Customer {
	for _, c := range customers {
		if c.ID == id {
			return c
		}
	}

	return nil
}
