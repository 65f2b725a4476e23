package document_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
	"github.com/MrJamesThe3rd/billkerfy/internal/document"
	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

func newService(ctrl *gomock.Controller) (*document.Service, *document.MockInvoiceGetter, *document.MockSource) {
	invoices := document.NewMockInvoiceGetter(ctrl)
	source := document.NewMockSource(ctrl)

	svc := document.NewService(invoices, source).WithClock(func() time.Time { return now })

	return svc, invoices, source
}

func TestService_Render(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, invoices, source := newService(ctrl)

	inv := paidInvoice()
	invoices.EXPECT().Get(gomock.Any(), inv.ID).Return(inv, nil)
	source.EXPECT().Snapshot(gomock.Any(), orgID).Return(&workspace.Snapshot{
		Organization: org,
		Customers:    []*customer.Customer{acme},
	}, nil)

	var buf bytes.Buffer
	name, err := svc.Render(context.Background(), &buf, inv.ID)
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-000001.html", name)
	assert.Contains(t, buf.String(), "Acme SL")
}

func TestService_Render_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, invoices, _ := newService(ctrl)

	id := uuid.New()
	invoices.EXPECT().Get(gomock.Any(), id).Return(nil, invoice.ErrNotFound)

	var buf bytes.Buffer
	_, err := svc.Render(context.Background(), &buf, id)
	require.ErrorIs(t, err, invoice.ErrNotFound)
	assert.Zero(t, buf.Len())
}

func TestService_Bundle(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, invoices, source := newService(ctrl)

	paid := paidInvoice()
	overdue := &invoice.Invoice{
		ID:             uuid.MustParse("00000000-0000-0000-0000-0000000000f2"),
		OrganizationID: orgID,
		CustomerID:     uuid.New(),
		Number:         "INV-2026-000002",
		Status:         invoice.StatusIssued,
		IssueDate:      date(2026, 1, 10),
		DueDate:        date(2026, 2, 1),
		Totals:         invoice.Totals{Subtotal: 50, Total: 50},
		CurrencyCode:   "EUR",
	}

	listed := func(inv *invoice.Invoice) *invoice.Invoice {
		c := *inv
		c.Lines = nil

		return &c
	}

	source.EXPECT().Snapshot(gomock.Any(), orgID).Return(&workspace.Snapshot{
		Organization: org,
		Customers:    []*customer.Customer{acme},
		Invoices:     []*invoice.Invoice{listed(paid), listed(overdue)},
	}, nil)
	invoices.EXPECT().Get(gomock.Any(), paid.ID).Return(paid, nil)
	invoices.EXPECT().Get(gomock.Any(), overdue.ID).Return(overdue, nil)

	var buf bytes.Buffer
	n, err := svc.Bundle(context.Background(), &buf, orgID, invoice.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	files := make(map[string]string)

	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)

		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()

		files[f.Name] = string(content)
	}

	require.Len(t, files, 3)
	assert.Contains(t, files["INV-2026-000001.html"], "Design work")
	assert.Contains(t, files["INV-2026-000002.html"], invoice.UnknownCustomer)
	assert.Equal(t,
		"* 2026-01-05 | INV-2026-000001 | Acme SL | €242.00 | Paid\n"+
			"* 2026-01-10 | INV-2026-000002 | Unknown customer | €50.00 | Overdue\n",
		files[document.SummaryFile],
	)
}

func TestService_Bundle_FilteredAndFailing(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, invoices, source := newService(ctrl)

	paid := paidInvoice()
	loadErr := errors.New("connection refused")

	source.EXPECT().Snapshot(gomock.Any(), orgID).Return(&workspace.Snapshot{
		Invoices: []*invoice.Invoice{paid},
	}, nil)
	invoices.EXPECT().Get(gomock.Any(), paid.ID).Return(nil, loadErr)

	var buf bytes.Buffer
	_, err := svc.Bundle(context.Background(), &buf, orgID, invoice.ListFilter{Status: invoice.FilterPaid})
	require.ErrorIs(t, err, loadErr)
	assert.Zero(t, buf.Len())
}
