package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/organization"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectOrganizationColumns = `
	id, legal_name, trade_name, tax_id, address_line1, city, country, currency_code, created_at
`

func scanOrganization(s scanner) (*organization.Organization, error) {
	var o organization.Organization

	var tradeName sql.NullString

	if err := s.Scan(
		&o.ID, &o.LegalName, &tradeName, &o.TaxID, &o.AddressLine1, &o.City, &o.Country,
		&o.CurrencyCode, &o.CreatedAt,
	); err != nil {
		return nil, err
	}

	o.TradeName = tradeName.String

	return &o, nil
}

func (s *Store) CreateOrganization(ctx context.Context, o *organization.Organization) error {
	query := `
		INSERT INTO organizations (legal_name, trade_name, tax_id, address_line1, city, country, currency_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		o.LegalName,
		sql.NullString{String: o.TradeName, Valid: o.TradeName != ""},
		o.TaxID,
		o.AddressLine1,
		o.City,
		o.Country,
		o.CurrencyCode,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating organization: %w", err)
	}

	return nil
}

func (s *Store) GetOrganization(ctx context.Context, id uuid.UUID) (*organization.Organization, error) {
	query := `SELECT ` + selectOrganizationColumns + ` FROM organizations WHERE id = $1`

	o, err := scanOrganization(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, organization.ErrNotFound
		}

		return nil, fmt.Errorf("getting organization: %w", err)
	}

	return o, nil
}

// ListOrganizations returns every organization, oldest first.
func (s *Store) ListOrganizations(ctx context.Context) ([]*organization.Organization, error) {
	query := `SELECT ` + selectOrganizationColumns + ` FROM organizations ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}
	defer rows.Close()

	var orgs []*organization.Organization

	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning organization: %w", err)
		}

		orgs = append(orgs, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating organizations: %w", err)
	}

	return orgs, nil
}
