package organization

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("organization not found")
	ErrMissingLegalName = errors.New("organization needs a legal name")
	ErrInvalidCurrency  = errors.New("invalid currency code")
)

// Organization is the issuing business. CurrencyCode is the default display
// currency for its invoices and dashboard.
type Organization struct {
	ID           uuid.UUID
	LegalName    string
	TradeName    string
	TaxID        string
	AddressLine1 string
	City         string
	Country      string
	CurrencyCode string
	CreatedAt    time.Time
}

// DisplayName prefers the trade name over the legal name.
func (o *Organization) DisplayName() string {
	if o.TradeName != "" {
		return o.TradeName
	}

	return o.LegalName
}
