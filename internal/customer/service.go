package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	ListCustomers(ctx context.Context, organizationID uuid.UUID) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error

	BeginImport(ctx context.Context, organizationID uuid.UUID) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Customer, error)
	CreateCustomers(ctx context.Context, customers []*Customer) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	OrganizationID uuid.UUID
	CompanyName    string
	TaxID          string
	Address        string
	Email          string
	Phone          string
}

func (p CreateParams) validate() error {
	if p.OrganizationID == uuid.Nil {
		return ErrMissingOrganization
	}

	if strings.TrimSpace(p.CompanyName) == "" {
		return ErrMissingCompanyName
	}

	return nil
}

// UpdateParams holds the fields to change; nil fields are left untouched.
type UpdateParams struct {
	CompanyName *string
	TaxID       *string
	Address     *string
	Email       *string
	Phone       *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Customer, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	c := paramsToCustomer(params)
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) List(ctx context.Context, organizationID uuid.UUID) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx, organizationID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Customer, error) {
	c, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.CompanyName != nil {
		if strings.TrimSpace(*params.CompanyName) == "" {
			return nil, ErrMissingCompanyName
		}

		c.CompanyName = strings.TrimSpace(*params.CompanyName)
	}

	if params.TaxID != nil {
		c.TaxID = strings.TrimSpace(*params.TaxID)
	}

	if params.Address != nil {
		c.Address = strings.TrimSpace(*params.Address)
	}

	if params.Email != nil {
		c.Email = strings.TrimSpace(*params.Email)
	}

	if params.Phone != nil {
		c.Phone = strings.TrimSpace(*params.Phone)
	}

	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Delete removes the customer. Invoices referencing it are kept.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCustomer(ctx, id)
}

type ImportResult struct {
	Imported  []*Customer
	Conflicts []Conflict
	Skipped   int
}

// Conflict pairs an incoming row with the customer it would duplicate.
type Conflict struct {
	Incoming CreateParams
	Existing *Customer
}

// ImportBatch creates the given customers in one transaction. Rows that duplicate an
// existing customer of the organization (same tax id, or same company name when no tax
// id is given) are reported as conflicts and skipped, as are rows without a company name.
func (s *Service) ImportBatch(ctx context.Context, organizationID uuid.UUID, params []CreateParams) (*ImportResult, error) {
	if organizationID == uuid.Nil {
		return nil, ErrMissingOrganization
	}

	result := &ImportResult{}

	var valid []CreateParams

	for _, p := range params {
		p.OrganizationID = organizationID
		if p.validate() != nil {
			result.Skipped++
			continue
		}

		valid = append(valid, p)
	}

	if len(valid) == 0 {
		return result, nil
	}

	itx, err := s.repo.BeginImport(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, valid)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[string]*Customer, len(duplicates)*2)
	for _, d := range duplicates {
		lookup[dedupKey(d.TaxID, d.CompanyName)] = d
		lookup[dedupKey("", d.CompanyName)] = d
	}

	seen := make(map[string]bool, len(valid))

	var fresh []*Customer

	for _, p := range valid {
		key := dedupKey(p.TaxID, p.CompanyName)

		if existing, found := lookup[key]; found {
			result.Conflicts = append(result.Conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		if seen[key] {
			result.Skipped++
			continue
		}

		seen[key] = true

		fresh = append(fresh, paramsToCustomer(p))
	}

	if len(fresh) == 0 {
		return result, nil
	}

	if err := itx.CreateCustomers(ctx, fresh); err != nil {
		return nil, fmt.Errorf("create customers: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	result.Imported = fresh

	return result, nil
}

func paramsToCustomer(p CreateParams) *Customer {
	return &Customer{
		OrganizationID: p.OrganizationID,
		CompanyName:    strings.TrimSpace(p.CompanyName),
		TaxID:          strings.TrimSpace(p.TaxID),
		Address:        strings.TrimSpace(p.Address),
		Email:          strings.TrimSpace(p.Email),
		Phone:          strings.TrimSpace(p.Phone),
	}
}
