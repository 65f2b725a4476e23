// Package document renders printable invoice documents from the frozen totals
// stored on each invoice.
package document

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/money"
	"github.com/MrJamesThe3rd/billkerfy/internal/organization"
)

//go:embed templates/*.html.tmpl
var templatesFS embed.FS

var tmpl = template.Must(template.ParseFS(templatesFS, "templates/invoice.html.tmpl"))

const missingDate = "-"

// Party is the seller or buyer block of a document.
type Party struct {
	Name    string
	TaxID   string
	Address []string
	Email   string
	Phone   string
}

// Line is a rendered line item.
type Line struct {
	Order       int
	Description string
	Quantity    string
	UnitPrice   string
	TaxRate     string
	Subtotal    string
	Tax         string
	Total       string
}

// Document is the view model of a printable invoice. Every amount is already formatted.
type Document struct {
	Number       string
	Status       invoice.DisplayStatus
	Tone         invoice.Tone
	IssueDate    string
	DueDate      string
	CurrencyCode string
	Seller       Party
	Buyer        Party
	Lines        []Line
	Subtotal     string
	Tax          string
	Total        string
	AmountPaid   string
	Balance      string
	Notes        string
}

// Build assembles the document for inv. Totals come from the invoice snapshot, never
// from its lines. org and cust may be nil when they are no longer loaded.
func Build(org *organization.Organization, cust *customer.Customer, inv *invoice.Invoice, now time.Time) Document {
	code := inv.CurrencyCode
	display := inv.Display(now)

	d := Document{
		Number:       inv.Number,
		Status:       display,
		Tone:         display.Tone(),
		IssueDate:    formatDate(inv.IssueDate),
		DueDate:      formatDate(inv.DueDate),
		CurrencyCode: code,
		Subtotal:     money.Format(inv.Totals.Subtotal, code),
		Tax:          money.Format(inv.Totals.Tax, code),
		Total:        money.Format(inv.Totals.Total, code),
		AmountPaid:   money.Format(inv.AmountPaid, code),
		Balance:      money.Format(inv.Totals.Total-inv.AmountPaid, code),
		Notes:        inv.Notes,
		Buyer:        Party{Name: invoice.UnknownCustomer},
	}

	if org != nil {
		d.Seller = Party{
			Name:    org.DisplayName(),
			TaxID:   org.TaxID,
			Address: nonEmpty(org.AddressLine1, strings.TrimSpace(org.City+" "+org.Country)),
		}
	}

	if cust != nil {
		d.Buyer = Party{
			Name:    cust.CompanyName,
			TaxID:   cust.TaxID,
			Address: nonEmpty(cust.Address),
			Email:   cust.Email,
			Phone:   cust.Phone,
		}
	}

	d.Lines = make([]Line, len(inv.Lines))
	for i, l := range inv.Lines {
		d.Lines[i] = Line{
			Order:       l.Order,
			Description: l.Item.Description,
			Quantity:    strconv.FormatFloat(l.Item.Quantity, 'f', -1, 64),
			UnitPrice:   money.Format(l.Item.UnitPrice, code),
			TaxRate:     strconv.FormatFloat(l.Item.TaxRate, 'f', -1, 64) + "%",
			Subtotal:    money.Format(l.Amounts.Subtotal, code),
			Tax:         money.Format(l.Amounts.Tax, code),
			Total:       money.Format(l.Amounts.Total, code),
		}
	}

	return d
}

// Render writes d as a standalone HTML page.
func Render(w io.Writer, d Document) error {
	if err := tmpl.Execute(w, d); err != nil {
		return fmt.Errorf("rendering document %s: %w", d.Number, err)
	}

	return nil
}

// Filename returns a filesystem-safe name for the document of inv.
func Filename(inv *invoice.Invoice) string {
	name := inv.Number
	if name == "" {
		name = inv.ID.String()
	}

	safe := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, name)

	return safe + ".html"
}

func formatDate(t time.Time) string {
	if !invoice.ValidDate(t) {
		return missingDate
	}

	return t.Format(time.DateOnly)
}

func nonEmpty(lines ...string) []string {
	var out []string

	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}

	return out
}
