package document_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
	"github.com/MrJamesThe3rd/billkerfy/internal/document"
	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/organization"
)

var (
	now   = time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	orgID = uuid.MustParse("00000000-0000-0000-0000-0000000000aa")
	acme  = &customer.Customer{
		ID:          uuid.MustParse("00000000-0000-0000-0000-0000000000c1"),
		CompanyName: "Acme SL",
		TaxID:       "B12345678",
		Address:     "Calle Mayor 1",
		Email:       "billing@acme.es",
	}
	org = &organization.Organization{
		ID:           orgID,
		LegalName:    "Estudio Norte SL",
		TradeName:    "Norte",
		TaxID:        "B87654321",
		AddressLine1: "Gran Vía 10",
		City:         "Madrid",
		Country:      "ES",
		CurrencyCode: "EUR",
	}
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func paidInvoice() *invoice.Invoice {
	items := []invoice.LineItem{
		{Description: "Design work", Quantity: 2, UnitPrice: 100, TaxRate: 21},
	}

	return &invoice.Invoice{
		ID:             uuid.MustParse("00000000-0000-0000-0000-0000000000f1"),
		OrganizationID: orgID,
		CustomerID:     acme.ID,
		Number:         "INV-2026-000001",
		Status:         invoice.StatusPaid,
		IssueDate:      date(2026, 1, 5),
		DueDate:        date(2026, 1, 20),
		Totals:         invoice.ComputeTotals(items),
		AmountPaid:     242,
		CurrencyCode:   "EUR",
		Lines:          invoice.BuildLines(items),
	}
}

func TestBuild(t *testing.T) {
	d := document.Build(org, acme, paidInvoice(), now)

	assert.Equal(t, "INV-2026-000001", d.Number)
	assert.Equal(t, invoice.DisplayPaid, d.Status)
	assert.Equal(t, invoice.TonePaid, d.Tone)
	assert.Equal(t, "2026-01-05", d.IssueDate)
	assert.Equal(t, "2026-01-20", d.DueDate)

	assert.Equal(t, "Norte", d.Seller.Name)
	assert.Equal(t, []string{"Gran Vía 10", "Madrid ES"}, d.Seller.Address)
	assert.Equal(t, "Acme SL", d.Buyer.Name)
	assert.Equal(t, "billing@acme.es", d.Buyer.Email)

	require.Len(t, d.Lines, 1)
	assert.Equal(t, document.Line{
		Order:       1,
		Description: "Design work",
		Quantity:    "2",
		UnitPrice:   "€100.00",
		TaxRate:     "21%",
		Subtotal:    "€200.00",
		Tax:         "€42.00",
		Total:       "€242.00",
	}, d.Lines[0])

	assert.Equal(t, "€200.00", d.Subtotal)
	assert.Equal(t, "€42.00", d.Tax)
	assert.Equal(t, "€242.00", d.Total)
	assert.Equal(t, "€242.00", d.AmountPaid)
	assert.Equal(t, "€0.00", d.Balance)
}

func TestBuild_UsesFrozenTotals(t *testing.T) {
	inv := paidInvoice()
	inv.Totals = invoice.Totals{Subtotal: 150, Tax: 0, Total: 150}

	d := document.Build(org, acme, inv, now)

	assert.Equal(t, "€150.00", d.Total)
	assert.Equal(t, "€242.00", d.Lines[0].Total)
}

func TestBuild_MissingParties(t *testing.T) {
	inv := paidInvoice()
	inv.Status = invoice.StatusIssued
	inv.IssueDate = time.Time{}
	inv.DueDate = time.Time{}

	d := document.Build(nil, nil, inv, now)

	assert.Equal(t, invoice.UnknownCustomer, d.Buyer.Name)
	assert.Empty(t, d.Seller.Name)
	assert.Equal(t, "-", d.IssueDate)
	assert.Equal(t, invoice.DisplayPending, d.Status)
}

func TestRender(t *testing.T) {
	inv := paidInvoice()
	inv.Notes = `<script>alert("x")</script>`

	var buf bytes.Buffer
	require.NoError(t, document.Render(&buf, document.Build(org, acme, inv, now)))

	html := buf.String()
	assert.Contains(t, html, "Invoice INV-2026-000001")
	assert.Contains(t, html, "status-paid")
	assert.Contains(t, html, "Design work")
	assert.Contains(t, html, "€242.00")
	assert.Contains(t, html, "Tax ID: B12345678")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "<script>")
}

func TestFilename(t *testing.T) {
	type testCase struct {
		name string
		inv  *invoice.Invoice
		want string
	}

	id := uuid.MustParse("00000000-0000-0000-0000-0000000000f1")

	tests := []testCase{
		{name: "number", inv: &invoice.Invoice{Number: "INV-2026-000001"}, want: "INV-2026-000001.html"},
		{name: "unsafe characters", inv: &invoice.Invoice{Number: "F/2026 01"}, want: "F_2026_01.html"},
		{name: "no number", inv: &invoice.Invoice{ID: id}, want: id.String() + ".html"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, document.Filename(tc.inv))
		})
	}
}
