package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/money"
)

type totalsResponse struct {
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
	SubtotalLabel string  `json:"subtotal_label"`
	TaxLabel      string  `json:"tax_label"`
	TotalLabel    string  `json:"total_label"`
}

type lineResponse struct {
	ID          string  `json:"id"`
	Order       int     `json:"order,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"`
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

type invoiceResponse struct {
	ID             uuid.UUID             `json:"id"`
	OrganizationID uuid.UUID             `json:"organization_id"`
	CustomerID     uuid.UUID             `json:"customer_id"`
	Number         string                `json:"number"`
	Status         invoice.Status        `json:"status"`
	DisplayStatus  invoice.DisplayStatus `json:"display_status"`
	Tone           invoice.Tone          `json:"tone"`
	IssueDate      *time.Time            `json:"issue_date,omitempty"`
	DueDate        *time.Time            `json:"due_date,omitempty"`
	Notes          string                `json:"notes,omitempty"`
	CurrencyCode   string                `json:"currency_code"`
	Totals         totalsResponse        `json:"totals"`
	AmountPaid     float64               `json:"amount_paid"`
	IssuedAt       *time.Time            `json:"issued_at,omitempty"`
	PaidAt         *time.Time            `json:"paid_at,omitempty"`
	Lines          []lineResponse        `json:"lines,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      *time.Time            `json:"updated_at,omitempty"`
}

type rowResponse struct {
	invoiceResponse
	CustomerName string `json:"customer_name"`
}

type previewResponse struct {
	CurrencyCode string         `json:"currency_code"`
	Lines        []lineResponse `json:"lines"`
	Totals       totalsResponse `json:"totals"`
}

func toTotals(t invoice.Totals, code string) totalsResponse {
	return totalsResponse{
		Subtotal:      t.Subtotal,
		Tax:           t.Tax,
		Total:         t.Total,
		SubtotalLabel: money.Format(t.Subtotal, code),
		TaxLabel:      money.Format(t.Tax, code),
		TotalLabel:    money.Format(t.Total, code),
	}
}

func toLine(order int, item invoice.LineItem, amounts invoice.LineAmounts) lineResponse {
	return lineResponse{
		ID:          item.ID,
		Order:       order,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TaxRate:     item.TaxRate,
		Subtotal:    amounts.Subtotal,
		Tax:         amounts.Tax,
		Total:       amounts.Total,
	}
}

// optionalDate hides invalid dates from clients.
func optionalDate(t time.Time) *time.Time {
	if !invoice.ValidDate(t) {
		return nil
	}

	return &t
}

func toResponse(inv *invoice.Invoice, now time.Time) invoiceResponse {
	display := inv.Display(now)

	resp := invoiceResponse{
		ID:             inv.ID,
		OrganizationID: inv.OrganizationID,
		CustomerID:     inv.CustomerID,
		Number:         inv.Number,
		Status:         inv.Status,
		DisplayStatus:  display,
		Tone:           display.Tone(),
		IssueDate:      optionalDate(inv.IssueDate),
		DueDate:        optionalDate(inv.DueDate),
		Notes:          inv.Notes,
		CurrencyCode:   inv.CurrencyCode,
		Totals:         toTotals(inv.Totals, inv.CurrencyCode),
		AmountPaid:     inv.AmountPaid,
		IssuedAt:       inv.IssuedAt,
		PaidAt:         inv.PaidAt,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}

	for _, l := range inv.Lines {
		resp.Lines = append(resp.Lines, toLine(l.Order, l.Item, l.Amounts))
	}

	return resp
}

func toRowList(rows []invoice.Row) []rowResponse {
	resp := make([]rowResponse, len(rows))
	for i, row := range rows {
		resp[i] = rowResponse{
			invoiceResponse: toResponse(row.Invoice, time.Time{}),
			CustomerName:    row.CustomerName,
		}
		resp[i].DisplayStatus = row.Display
		resp[i].Tone = row.Display.Tone()
	}

	return resp
}

func toPreviewResponse(items []invoice.LineItem, code string) previewResponse {
	resp := previewResponse{
		CurrencyCode: code,
		Lines:        make([]lineResponse, len(items)),
		Totals:       toTotals(invoice.ComputeTotals(items), code),
	}

	for i, item := range items {
		resp.Lines[i] = toLine(i+1, item, invoice.ComputeLine(item))
	}

	return resp
}
