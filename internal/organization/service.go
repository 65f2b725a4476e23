package organization

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=organization
type Repository interface {
	CreateOrganization(ctx context.Context, org *Organization) error
	GetOrganization(ctx context.Context, id uuid.UUID) (*Organization, error)
	ListOrganizations(ctx context.Context) ([]*Organization, error)
}

type Service struct {
	repo            Repository
	defaultCurrency string
}

func NewService(repo Repository, defaultCurrency string) *Service {
	return &Service{repo: repo, defaultCurrency: defaultCurrency}
}

type CreateParams struct {
	LegalName    string
	TradeName    string
	TaxID        string
	AddressLine1 string
	City         string
	Country      string
	CurrencyCode string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Organization, error) {
	legalName := strings.TrimSpace(params.LegalName)
	if legalName == "" {
		return nil, ErrMissingLegalName
	}

	code := strings.TrimSpace(params.CurrencyCode)
	if code == "" {
		code = s.defaultCurrency
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}

	org := &Organization{
		LegalName:    legalName,
		TradeName:    strings.TrimSpace(params.TradeName),
		TaxID:        strings.TrimSpace(params.TaxID),
		AddressLine1: strings.TrimSpace(params.AddressLine1),
		City:         strings.TrimSpace(params.City),
		Country:      strings.TrimSpace(params.Country),
		CurrencyCode: unit.String(),
	}

	if err := s.repo.CreateOrganization(ctx, org); err != nil {
		return nil, err
	}

	return org, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Organization, error) {
	return s.repo.GetOrganization(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Organization, error) {
	return s.repo.ListOrganizations(ctx)
}

// Primary returns the oldest organization, the one used when none is selected.
func (s *Service) Primary(ctx context.Context) (*Organization, error) {
	orgs, err := s.repo.ListOrganizations(ctx)
	if err != nil {
		return nil, err
	}

	if len(orgs) == 0 {
		return nil, ErrNotFound
	}

	return orgs[0], nil
}
