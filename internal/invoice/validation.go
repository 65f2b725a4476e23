package invoice

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// NewLineItem builds a line item after rejecting out-of-domain numbers.
// It returns a *ValidationError naming the first offending field.
func NewLineItem(id, description string, quantity, unitPrice, taxRate float64) (LineItem, error) {
	switch {
	case !finite(quantity) || quantity < 1:
		return LineItem{}, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	case !finite(unitPrice) || unitPrice < 0:
		return LineItem{}, &ValidationError{Field: "unit_price", Reason: "must not be negative"}
	case !finite(taxRate) || taxRate < 0 || taxRate > 100:
		return LineItem{}, &ValidationError{Field: "tax_rate", Reason: "must be between 0 and 100"}
	}

	if id == "" {
		id = uuid.NewString()
	}

	return LineItem{
		ID:          id,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TaxRate:     taxRate,
	}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// CreateAction is the user action that creates an invoice and picks its initial state.
type CreateAction string

const (
	ActionSaveDraft        CreateAction = "save_draft"
	ActionIssue            CreateAction = "issue"
	ActionIssueAndMarkPaid CreateAction = "issue_and_mark_paid"
)

// Valid reports whether a is a known create action.
func (a CreateAction) Valid() bool {
	switch a {
	case ActionSaveDraft, ActionIssue, ActionIssueAndMarkPaid:
		return true
	}

	return false
}

// Validate checks the associations required before the action can run.
// Drafts may still carry lines without descriptions; issuing needs at least one described line.
func Validate(params CreateParams) error {
	if !params.Action.Valid() {
		return ErrInvalidAction
	}

	if params.OrganizationID == uuid.Nil {
		return ErrMissingOrganization
	}

	if params.CustomerID == uuid.Nil {
		return ErrMissingCustomer
	}

	if params.Action == ActionSaveDraft {
		return nil
	}

	for _, item := range params.Items {
		if strings.TrimSpace(item.Description) != "" {
			return nil
		}
	}

	return ErrMissingDescription
}
