package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCurrency is used when neither the draft nor its organization names a currency.
const DefaultCurrency = "EUR"

// maxNumberAttempts bounds retries when a generated invoice number collides.
const maxNumberAttempts = 3

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	// CreateInvoice persists the invoice, its lines and the optional payment together.
	CreateInvoice(ctx context.Context, inv *Invoice, payment *Payment) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, organizationID uuid.UUID) ([]*Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Invoice, error)
}

// Notifier is told about every successful status change.
type Notifier interface {
	StatusChanged(ctx context.Context, change StatusChange) error
}

// StatusChange describes a persisted status reassignment.
type StatusChange struct {
	InvoiceID      uuid.UUID
	OrganizationID uuid.UUID
	From           Status
	To             Status
	ChangedAt      time.Time
}

type Service struct {
	repo     Repository
	numbers  *NumberGenerator
	policy   TransitionPolicy
	notifier Notifier
	now      func() time.Time
}

type Option func(*Service)

// WithPolicy replaces the default permissive transition policy.
func WithPolicy(p TransitionPolicy) Option {
	return func(s *Service) { s.policy = p }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, numbers *NumberGenerator, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		numbers: numbers,
		policy:  Permissive{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateParams struct {
	OrganizationID uuid.UUID
	CustomerID     uuid.UUID
	Action         CreateAction
	IssueDate      time.Time
	DueDate        time.Time
	Notes          string
	CurrencyCode   string
	Items          []LineItem
}

// Create validates the draft, freezes its totals and persists it in the state
// selected by params.Action.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	if err := Validate(params); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	totals := ComputeTotals(params.Items)

	currency := strings.ToUpper(strings.TrimSpace(params.CurrencyCode))
	if currency == "" {
		currency = DefaultCurrency
	}

	inv := &Invoice{
		OrganizationID: params.OrganizationID,
		CustomerID:     params.CustomerID,
		Status:         StatusDraft,
		IssueDate:      params.IssueDate,
		DueDate:        params.DueDate,
		Notes:          params.Notes,
		Totals:         totals,
		CurrencyCode:   currency,
		Lines:          BuildLines(params.Items),
	}

	var payment *Payment

	switch params.Action {
	case ActionIssue:
		inv.Status = StatusIssued
		inv.IssuedAt = &now
	case ActionIssueAndMarkPaid:
		inv.Status = StatusPaid
		inv.IssuedAt = &now
		inv.PaidAt = &now
		inv.AmountPaid = totals.Total

		if inv.AmountPaid > 0 {
			payment = &Payment{
				Amount:    inv.AmountPaid,
				PaidAt:    now,
				Method:    "other",
				Reference: "Auto from issue and mark paid",
			}
		}
	}

	numberDate := params.IssueDate
	if !ValidDate(numberDate) {
		numberDate = now
	}

	for range maxNumberAttempts {
		inv.Number = s.numbers.Next(numberDate)

		err := s.repo.CreateInvoice(ctx, inv, payment)
		if err == nil {
			return inv, nil
		}

		if !errors.Is(err, ErrDuplicateNumber) {
			return nil, fmt.Errorf("creating invoice: %w", err)
		}

		slog.Warn("invoice number collision, retrying", "number", inv.Number)
	}

	return nil, fmt.Errorf("creating invoice: %w", ErrDuplicateNumber)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, organizationID uuid.UUID) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, organizationID)
}

// UpdateStatus reassigns the status of an existing invoice. Only the status changes;
// issuedAt, paidAt and amountPaid keep the values set at creation.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Invoice, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	current, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.policy.Allow(current.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrTransitionNotAllowed, current.Status, status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		change := StatusChange{
			InvoiceID:      updated.ID,
			OrganizationID: updated.OrganizationID,
			From:           current.Status,
			To:             status,
			ChangedAt:      s.now().UTC(),
		}
		if err := s.notifier.StatusChanged(ctx, change); err != nil {
			slog.Warn("failed to publish status change", "invoice_id", id, "error", err)
		}
	}

	return updated, nil
}
