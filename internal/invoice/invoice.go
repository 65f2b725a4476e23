package invoice

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the persisted lifecycle state of an invoice.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusIssued Status = "issued"
	StatusPaid   Status = "paid"
	StatusVoid   Status = "void"
)

// Statuses lists every persisted status in display order.
var Statuses = []Status{StatusDraft, StatusIssued, StatusPaid, StatusVoid}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusIssued, StatusPaid, StatusVoid:
		return true
	}

	return false
}

// Totals is the amount snapshot frozen into an invoice when it is created.
// It is never recomputed from the persisted line items afterwards.
type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// Add returns the componentwise sum of t and o.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Subtotal: t.Subtotal + o.Subtotal,
		Tax:      t.Tax + o.Tax,
		Total:    t.Total + o.Total,
	}
}

// Invoice represents an issued or draft invoice owned by an organization.
type Invoice struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	CustomerID     uuid.UUID
	Number         string
	Status         Status
	IssueDate      time.Time // zero when missing or unparseable
	DueDate        time.Time // zero when missing or unparseable
	Notes          string
	Totals         Totals
	AmountPaid     float64
	CurrencyCode   string
	IssuedAt       *time.Time
	PaidAt         *time.Time
	Lines          []Line // Loaded only by Get
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// Line is a persisted line item together with the amounts computed at creation.
type Line struct {
	ID        uuid.UUID
	InvoiceID uuid.UUID
	Order     int // 1-based
	Item      LineItem
	Amounts   LineAmounts
}

// Payment is the record written alongside an invoice created as paid.
type Payment struct {
	ID        uuid.UUID
	InvoiceID uuid.UUID
	Amount    float64
	PaidAt    time.Time
	Method    string
	Reference string
	Notes     string
}
