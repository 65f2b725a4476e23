package customer

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("customer not found")
	ErrMissingOrganization = errors.New("customer needs an organization")
	ErrMissingCompanyName  = errors.New("customer needs a company name")
)

// Customer is a billed party of an organization. Empty TaxID, Email and Phone mean unset.
type Customer struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	CompanyName    string
	TaxID          string
	Address        string
	Email          string
	Phone          string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// dedupKey identifies a customer for import conflict detection: the tax id when
// present, otherwise the company name.
func dedupKey(taxID, companyName string) string {
	if k := strings.ToLower(strings.TrimSpace(taxID)); k != "" {
		return "tax:" + k
	}

	return "name:" + strings.ToLower(strings.TrimSpace(companyName))
}

// Names maps customer ids to company names.
func Names(customers []*Customer) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.CompanyName
	}

	return names
}
