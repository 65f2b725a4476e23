package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
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

const selectCustomerColumns = `
	id, organization_id, company_name, tax_id, address, email, phone, created_at, updated_at
`

func scanCustomer(s scanner) (*customer.Customer, error) {
	var c customer.Customer

	var taxID, email, phone sql.NullString

	if err := s.Scan(
		&c.ID, &c.OrganizationID, &c.CompanyName, &taxID, &c.Address, &email, &phone,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.TaxID = taxID.String
	c.Email = email.String
	c.Phone = phone.String

	return &c, nil
}

// nullString stores empty optional fields as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertCustomer(ctx context.Context, db execer, c *customer.Customer) error {
	query := `
		INSERT INTO customers (organization_id, company_name, tax_id, address, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := db.QueryRowContext(ctx, query,
		c.OrganizationID,
		c.CompanyName,
		nullString(c.TaxID),
		c.Address,
		nullString(c.Email),
		nullString(c.Phone),
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	return insertCustomer(ctx, s.db, c)
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + ` FROM customers WHERE id = $1`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) ListCustomers(ctx context.Context, organizationID uuid.UUID) ([]*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + `
		FROM customers
		WHERE organization_id = $1
		ORDER BY company_name ASC`

	rows, err := s.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

func collect(rows *sql.Rows) ([]*customer.Customer, error) {
	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}

	return customers, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET company_name = $2, tax_id = $3, address = $4, email = $5, phone = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.ID,
		c.CompanyName,
		nullString(c.TaxID),
		c.Address,
		nullString(c.Email),
		nullString(c.Phone),
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customer.ErrNotFound
		}

		return fmt.Errorf("updating customer: %w", err)
	}

	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return customer.ErrNotFound
	}

	return nil
}

type importTx struct {
	tx             *sql.Tx
	organizationID uuid.UUID
}

// BeginImport opens a transaction holding an advisory lock per organization, so two
// imports for the same organization cannot both miss each other's rows.
func (s *Store) BeginImport(ctx context.Context, organizationID uuid.UUID) (customer.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", organizationID.String()); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx, organizationID: organizationID}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

// FindDuplicates returns existing customers sharing a tax id or company name with params.
func (itx *importTx) FindDuplicates(ctx context.Context, params []customer.CreateParams) ([]*customer.Customer, error) {
	if len(params) == 0 {
		return nil, nil
	}

	taxIDs := make([]string, 0, len(params))
	names := make([]string, 0, len(params))

	for _, p := range params {
		if t := strings.ToLower(strings.TrimSpace(p.TaxID)); t != "" {
			taxIDs = append(taxIDs, t)
		}

		names = append(names, strings.ToLower(strings.TrimSpace(p.CompanyName)))
	}

	query := `SELECT ` + selectCustomerColumns + `
		FROM customers
		WHERE organization_id = $1
			AND (LOWER(tax_id) = ANY($2) OR LOWER(company_name) = ANY($3))`

	rows, err := itx.tx.QueryContext(ctx, query, itx.organizationID, taxIDs, names)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

func (itx *importTx) CreateCustomers(ctx context.Context, customers []*customer.Customer) error {
	for _, c := range customers {
		if err := insertCustomer(ctx, itx.tx, c); err != nil {
			return err
		}
	}

	return nil
}
