package organization

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/organization"
)

type organizationResponse struct {
	ID           uuid.UUID `json:"id"`
	LegalName    string    `json:"legal_name"`
	TradeName    string    `json:"trade_name,omitempty"`
	DisplayName  string    `json:"display_name"`
	TaxID        string    `json:"tax_id"`
	AddressLine1 string    `json:"address_line1"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	CurrencyCode string    `json:"currency_code"`
	CreatedAt    time.Time `json:"created_at"`
}

type reloadResponse struct {
	Customers int       `json:"customers"`
	Invoices  int       `json:"invoices"`
	LoadedAt  time.Time `json:"loaded_at"`
}

func toResponse(o *organization.Organization) organizationResponse {
	return organizationResponse{
		ID:           o.ID,
		LegalName:    o.LegalName,
		TradeName:    o.TradeName,
		DisplayName:  o.DisplayName(),
		TaxID:        o.TaxID,
		AddressLine1: o.AddressLine1,
		City:         o.City,
		Country:      o.Country,
		CurrencyCode: o.CurrencyCode,
		CreatedAt:    o.CreatedAt,
	}
}

func toResponseList(orgs []*organization.Organization) []organizationResponse {
	resp := make([]organizationResponse, len(orgs))
	for i, o := range orgs {
		resp[i] = toResponse(o)
	}

	return resp
}
