package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/billing"
	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
	"github.com/MrJamesThe3rd/billkerfy/internal/money"
)

type customerResponse struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	CompanyName    string     `json:"company_name"`
	TaxID          string     `json:"tax_id,omitempty"`
	Address        string     `json:"address,omitempty"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type paramsDTO struct {
	CompanyName string `json:"company_name"`
	TaxID       string `json:"tax_id,omitempty"`
	Email       string `json:"email,omitempty"`
}

type conflictDTO struct {
	Incoming paramsDTO        `json:"incoming"`
	Existing customerResponse `json:"existing"`
}

type importResponse struct {
	Imported  int                `json:"imported"`
	Skipped   int                `json:"skipped"`
	Customers []customerResponse `json:"customers"`
	Conflicts []conflictDTO      `json:"conflicts,omitempty"`
}

type billingRowResponse struct {
	Customer         customerResponse `json:"customer"`
	ContactName      string           `json:"contact_name"`
	BilledTotal      float64          `json:"billed_total"`
	BilledTotalLabel string           `json:"billed_total_label"`
	FirstInvoiceDate *time.Time       `json:"first_invoice_date,omitempty"`
	CustomerSince    string           `json:"customer_since"`
	Active           bool             `json:"active"`
}

type billingResponse struct {
	CurrencyCode    string               `json:"currency_code"`
	TotalBilled     float64              `json:"total_billed"`
	ActiveCustomers int                  `json:"active_customers"`
	NewThisMonth    int                  `json:"new_this_month"`
	AverageBilling  float64              `json:"average_billing"`
	Rows            []billingRowResponse `json:"rows"`
}

func toResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		CompanyName:    c.CompanyName,
		TaxID:          c.TaxID,
		Address:        c.Address,
		Email:          c.Email,
		Phone:          c.Phone,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toResponseList(cs []*customer.Customer) []customerResponse {
	resp := make([]customerResponse, len(cs))
	for i, c := range cs {
		resp[i] = toResponse(c)
	}

	return resp
}

func toImportResponse(result *customer.ImportResult) importResponse {
	resp := importResponse{
		Imported:  len(result.Imported),
		Skipped:   result.Skipped,
		Customers: toResponseList(result.Imported),
	}

	for _, c := range result.Conflicts {
		resp.Conflicts = append(resp.Conflicts, conflictDTO{
			Incoming: paramsDTO{
				CompanyName: c.Incoming.CompanyName,
				TaxID:       c.Incoming.TaxID,
				Email:       c.Incoming.Email,
			},
			Existing: toResponse(c.Existing),
		})
	}

	return resp
}

func toBillingResponse(r billing.Report) billingResponse {
	resp := billingResponse{
		CurrencyCode:    r.CurrencyCode,
		TotalBilled:     r.TotalBilled,
		ActiveCustomers: r.ActiveCustomers,
		NewThisMonth:    r.NewThisMonth,
		AverageBilling:  r.AverageBilling,
		Rows:            make([]billingRowResponse, len(r.Rows)),
	}

	for i, row := range r.Rows {
		resp.Rows[i] = billingRowResponse{
			Customer:         toResponse(row.Customer),
			ContactName:      row.ContactName,
			BilledTotal:      row.BilledTotal,
			BilledTotalLabel: money.Format(row.BilledTotal, r.CurrencyCode),
			CustomerSince:    row.CustomerSince,
			Active:           row.Active(),
		}

		if !row.FirstInvoiceDate.IsZero() {
			resp.Rows[i].FirstInvoiceDate = &row.FirstInvoiceDate
		}
	}

	return resp
}
