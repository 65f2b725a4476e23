// Package workspace keeps a per-organization snapshot of customers and invoices.
// Snapshots are immutable once published; writes go to the backing services first
// and the cache is only updated after they succeed.
package workspace

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/organization"
)

//go:generate mockgen -source=workspace.go -destination=workspace_mock.go -package=workspace
type OrganizationService interface {
	Get(ctx context.Context, id uuid.UUID) (*organization.Organization, error)
}

type CustomerService interface {
	Create(ctx context.Context, params customer.CreateParams) (*customer.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
	List(ctx context.Context, organizationID uuid.UUID) ([]*customer.Customer, error)
	Update(ctx context.Context, id uuid.UUID, params customer.UpdateParams) (*customer.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ImportBatch(ctx context.Context, organizationID uuid.UUID, params []customer.CreateParams) (*customer.ImportResult, error)
}

type InvoiceService interface {
	Create(ctx context.Context, params invoice.CreateParams) (*invoice.Invoice, error)
	List(ctx context.Context, organizationID uuid.UUID) ([]*invoice.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status invoice.Status) (*invoice.Invoice, error)
}

// Snapshot is the last successfully loaded state of an organization.
type Snapshot struct {
	Organization *organization.Organization
	Customers    []*customer.Customer
	Invoices     []*invoice.Invoice
	LoadedAt     time.Time
}

// CurrencyCode is the organization currency, else the first invoice's, else the default.
func (s *Snapshot) CurrencyCode() string {
	if s.Organization != nil && s.Organization.CurrencyCode != "" {
		return s.Organization.CurrencyCode
	}

	if len(s.Invoices) > 0 && s.Invoices[0].CurrencyCode != "" {
		return s.Invoices[0].CurrencyCode
	}

	return invoice.DefaultCurrency
}

// CustomerNames maps customer ids to company names.
func (s *Snapshot) CustomerNames() map[uuid.UUID]string {
	return customer.Names(s.Customers)
}

type Workspace struct {
	orgs      OrganizationService
	customers CustomerService
	invoices  InvoiceService

	mu        sync.RWMutex
	snapshots map[uuid.UUID]*Snapshot
}

func New(orgs OrganizationService, customers CustomerService, invoices InvoiceService) *Workspace {
	return &Workspace{
		orgs:      orgs,
		customers: customers,
		invoices:  invoices,
		snapshots: make(map[uuid.UUID]*Snapshot),
	}
}

// Snapshot returns the cached snapshot for the organization, loading it on first use.
func (w *Workspace) Snapshot(ctx context.Context, organizationID uuid.UUID) (*Snapshot, error) {
	w.mu.RLock()
	snap, ok := w.snapshots[organizationID]
	w.mu.RUnlock()

	if ok {
		return snap, nil
	}

	return w.Reload(ctx, organizationID)
}

// Reload fetches the organization, its customers and its invoices concurrently.
// On any failure the previous snapshot stays in place.
func (w *Workspace) Reload(ctx context.Context, organizationID uuid.UUID) (*Snapshot, error) {
	snap := &Snapshot{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		org, err := w.orgs.Get(gctx, organizationID)
		if err != nil {
			return fmt.Errorf("loading organization: %w", err)
		}

		snap.Organization = org

		return nil
	})

	g.Go(func() error {
		cs, err := w.customers.List(gctx, organizationID)
		if err != nil {
			return fmt.Errorf("loading customers: %w", err)
		}

		snap.Customers = cs

		return nil
	})

	g.Go(func() error {
		invs, err := w.invoices.List(gctx, organizationID)
		if err != nil {
			return fmt.Errorf("loading invoices: %w", err)
		}

		snap.Invoices = invs

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.LoadedAt = time.Now()

	w.mu.Lock()
	w.snapshots[organizationID] = snap
	w.mu.Unlock()

	return snap, nil
}

// Invalidate drops the cached snapshot so the next read reloads it.
func (w *Workspace) Invalidate(organizationID uuid.UUID) {
	w.mu.Lock()
	delete(w.snapshots, organizationID)
	w.mu.Unlock()
}

// update replaces the cached snapshot of an organization with a modified copy.
// Nothing happens when the organization has not been loaded yet.
func (w *Workspace) update(organizationID uuid.UUID, fn func(next *Snapshot)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	current, ok := w.snapshots[organizationID]
	if !ok {
		return
	}

	next := &Snapshot{
		Organization: current.Organization,
		Customers:    slices.Clone(current.Customers),
		Invoices:     slices.Clone(current.Invoices),
		LoadedAt:     current.LoadedAt,
	}
	fn(next)

	w.snapshots[organizationID] = next
}

func (w *Workspace) CreateInvoice(ctx context.Context, params invoice.CreateParams) (*invoice.Invoice, error) {
	inv, err := w.invoices.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	w.update(inv.OrganizationID, func(next *Snapshot) {
		next.Invoices = append(next.Invoices, inv)
	})

	return inv, nil
}

func (w *Workspace) UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status invoice.Status) (*invoice.Invoice, error) {
	inv, err := w.invoices.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	w.update(inv.OrganizationID, func(next *Snapshot) {
		for i, existing := range next.Invoices {
			if existing.ID == inv.ID {
				next.Invoices[i] = inv
				return
			}
		}

		next.Invoices = append(next.Invoices, inv)
	})

	return inv, nil
}

func (w *Workspace) CreateCustomer(ctx context.Context, params customer.CreateParams) (*customer.Customer, error) {
	c, err := w.customers.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	w.update(c.OrganizationID, func(next *Snapshot) {
		next.Customers = append(next.Customers, c)
	})

	return c, nil
}

func (w *Workspace) UpdateCustomer(ctx context.Context, id uuid.UUID, params customer.UpdateParams) (*customer.Customer, error) {
	c, err := w.customers.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}

	w.update(c.OrganizationID, func(next *Snapshot) {
		for i, existing := range next.Customers {
			if existing.ID == c.ID {
				next.Customers[i] = c
				return
			}
		}
	})

	return c, nil
}

func (w *Workspace) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	c, err := w.customers.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := w.customers.Delete(ctx, id); err != nil {
		return err
	}

	w.update(c.OrganizationID, func(next *Snapshot) {
		next.Customers = slices.DeleteFunc(next.Customers, func(existing *customer.Customer) bool {
			return existing.ID == id
		})
	})

	return nil
}

func (w *Workspace) ImportCustomers(ctx context.Context, organizationID uuid.UUID, params []customer.CreateParams) (*customer.ImportResult, error) {
	result, err := w.customers.ImportBatch(ctx, organizationID, params)
	if err != nil {
		return nil, err
	}

	if len(result.Imported) > 0 {
		w.update(organizationID, func(next *Snapshot) {
			next.Customers = append(next.Customers, result.Imported...)
		})
	}

	return result, nil
}
