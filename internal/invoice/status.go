package invoice

import (
	"fmt"
	"strings"
	"time"
)

// DisplayStatus is the derived, never persisted, status shown to users.
type DisplayStatus string

const (
	DisplayPaid    DisplayStatus = "Paid"
	DisplayDraft   DisplayStatus = "Draft"
	DisplayVoid    DisplayStatus = "Void"
	DisplayOverdue DisplayStatus = "Overdue"
	DisplayPending DisplayStatus = "Pending"
)

// Tone groups display statuses that share the same visual treatment.
type Tone string

const (
	TonePaid    Tone = "paid"
	ToneDraft   Tone = "draft"
	ToneOverdue Tone = "overdue"
	TonePending Tone = "pending"
)

// Tone returns the visual tone of d. Void shares the draft tone.
func (d DisplayStatus) Tone() Tone {
	switch d {
	case DisplayPaid:
		return TonePaid
	case DisplayDraft, DisplayVoid:
		return ToneDraft
	case DisplayOverdue:
		return ToneOverdue
	}

	return TonePending
}

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-07:00",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseDate parses an ISO date or date-time. Unparseable input yields the zero time,
// which every status and aggregation function treats as an invalid date.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}

	return time.Time{}
}

// ValidDate reports whether t holds a parsed date.
func ValidDate(t time.Time) bool {
	return !t.IsZero()
}

// IsOverdue reports whether an invoice with the given status and due date is overdue at now.
// Invalid due dates are never overdue.
func IsOverdue(status Status, dueDate, now time.Time) bool {
	return status == StatusIssued && ValidDate(dueDate) && dueDate.Before(now)
}

// IsPending reports whether an issued invoice is still within its due date at now.
// Invalid due dates count as pending.
func IsPending(status Status, dueDate, now time.Time) bool {
	return status == StatusIssued && !IsOverdue(status, dueDate, now)
}

// Display derives the user-facing status from the persisted status, due date and now.
func Display(status Status, dueDate, now time.Time) DisplayStatus {
	switch status {
	case StatusPaid:
		return DisplayPaid
	case StatusDraft:
		return DisplayDraft
	case StatusVoid:
		return DisplayVoid
	}

	if IsOverdue(status, dueDate, now) {
		return DisplayOverdue
	}

	return DisplayPending
}

// Display derives the user-facing status of inv at now.
func (inv *Invoice) Display(now time.Time) DisplayStatus {
	return Display(inv.Status, inv.DueDate, now)
}

// TransitionPolicy decides whether a status change is allowed.
type TransitionPolicy interface {
	Allow(from, to Status) bool
}

// Permissive allows any status to be reassigned to any other status.
type Permissive struct{}

func (Permissive) Allow(_, _ Status) bool { return true }

// Strict only allows forward moves: draft→issued, draft→void, issued→paid, issued→void, paid→void.
// Writing the current status again is always allowed.
type Strict struct{}

var strictTransitions = map[Status][]Status{
	StatusDraft:  {StatusIssued, StatusVoid},
	StatusIssued: {StatusPaid, StatusVoid},
	StatusPaid:   {StatusVoid},
}

func (Strict) Allow(from, to Status) bool {
	if from == to {
		return true
	}

	for _, next := range strictTransitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// ParseStatus validates a raw status value.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}

	return st, nil
}
