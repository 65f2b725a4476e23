package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UnknownCustomer is shown for invoices whose customer is not in the loaded set.
const UnknownCustomer = "Unknown customer"

type StatusFilter string

const (
	FilterAll     StatusFilter = "all"
	FilterPaid    StatusFilter = "paid"
	FilterPending StatusFilter = "pending"
	FilterOverdue StatusFilter = "overdue"
)

type RangeFilter string

const (
	RangeAll  RangeFilter = "all"
	Range30d  RangeFilter = "30d"
	Range90d  RangeFilter = "90d"
	RangeYear RangeFilter = "year"
)

// ListFilter narrows an organization's invoice list. Empty fields match everything.
type ListFilter struct {
	Status StatusFilter
	Range  RangeFilter
	Query  string
}

// ParseListFilter validates raw query values.
func ParseListFilter(status, rng, query string) (ListFilter, error) {
	f := ListFilter{
		Status: StatusFilter(strings.ToLower(strings.TrimSpace(status))),
		Range:  RangeFilter(strings.ToLower(strings.TrimSpace(rng))),
		Query:  query,
	}

	switch f.Status {
	case "", FilterAll, FilterPaid, FilterPending, FilterOverdue:
	default:
		return ListFilter{}, fmt.Errorf("unknown status filter %q", status)
	}

	switch f.Range {
	case "", RangeAll, Range30d, Range90d, RangeYear:
	default:
		return ListFilter{}, fmt.Errorf("unknown date range %q", rng)
	}

	return f, nil
}

// Row is an invoice as shown in a list, with its derived status and customer name.
type Row struct {
	Invoice      *Invoice
	CustomerName string
	Display      DisplayStatus
}

// since returns the earliest issue date accepted by r, or the zero time when r is unbounded.
func (r RangeFilter) since(now time.Time) time.Time {
	switch r {
	case Range30d:
		return now.AddDate(0, 0, -30)
	case Range90d:
		return now.AddDate(0, 0, -90)
	case RangeYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}

	return time.Time{}
}

func (f StatusFilter) match(inv *Invoice, now time.Time) bool {
	switch f {
	case FilterPaid:
		return inv.Status == StatusPaid
	case FilterPending:
		return IsPending(inv.Status, inv.DueDate, now)
	case FilterOverdue:
		return IsOverdue(inv.Status, inv.DueDate, now)
	}

	return true
}

// Filter builds list rows for invoices matching f at now. When a date range is active,
// invoices without a valid issue date are dropped. The query matches the invoice number
// or customer name, case-insensitively.
func Filter(invoices []*Invoice, customerNames map[uuid.UUID]string, f ListFilter, now time.Time) []Row {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	start := f.Range.since(now)

	rows := make([]Row, 0, len(invoices))

	for _, inv := range invoices {
		if !f.Status.match(inv, now) {
			continue
		}

		if !start.IsZero() && (!ValidDate(inv.IssueDate) || inv.IssueDate.Before(start)) {
			continue
		}

		name, ok := customerNames[inv.CustomerID]
		if !ok {
			name = UnknownCustomer
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(inv.Number), query) &&
			!strings.Contains(strings.ToLower(name), query) {
			continue
		}

		rows = append(rows, Row{
			Invoice:      inv,
			CustomerName: name,
			Display:      inv.Display(now),
		})
	}

	return rows
}
