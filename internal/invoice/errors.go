package invoice

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("invoice not found")
	ErrInvalidStatus        = errors.New("invalid invoice status")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrDuplicateNumber      = errors.New("invoice number already taken")

	// Returned by Validate before an invoice is created.
	ErrMissingOrganization = errors.New("no organization selected")
	ErrMissingCustomer     = errors.New("no customer selected")
	ErrMissingDescription  = errors.New("at least one line item needs a description")
	ErrInvalidAction       = errors.New("invalid create action")
)

// ValidationError reports a single out-of-domain input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
