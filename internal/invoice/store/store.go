package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

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

const selectInvoiceColumns = `
	id, organization_id, customer_id, invoice_number, status, issue_date, due_date, notes,
	subtotal_amount, tax_amount, total_amount, amount_paid, currency_code,
	issued_at, paid_at, created_at, updated_at
`

// scanInvoice reads a row in selectInvoiceColumns order.
func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var status string

	var issueDate, dueDate sql.NullTime

	if err := s.Scan(
		&inv.ID, &inv.OrganizationID, &inv.CustomerID, &inv.Number, &status, &issueDate, &dueDate, &inv.Notes,
		&inv.Totals.Subtotal, &inv.Totals.Tax, &inv.Totals.Total, &inv.AmountPaid, &inv.CurrencyCode,
		&inv.IssuedAt, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.Status = invoice.Status(status)
	inv.IssueDate = fromNullTime(issueDate)
	inv.DueDate = fromNullTime(dueDate)

	return &inv, nil
}

func fromNullTime(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}

	return t.Time.UTC()
}

// nullTime stores the zero time as NULL.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// CreateInvoice writes the invoice, its lines and the optional payment in one transaction.
func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice, payment *invoice.Payment) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO invoices (
			organization_id, customer_id, invoice_number, status, issue_date, due_date, notes,
			subtotal_amount, tax_amount, total_amount, amount_paid, currency_code,
			issued_at, paid_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		inv.OrganizationID,
		inv.CustomerID,
		inv.Number,
		inv.Status,
		nullTime(inv.IssueDate),
		nullTime(inv.DueDate),
		inv.Notes,
		inv.Totals.Subtotal,
		inv.Totals.Tax,
		inv.Totals.Total,
		inv.AmountPaid,
		inv.CurrencyCode,
		inv.IssuedAt,
		inv.PaidAt,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return invoice.ErrDuplicateNumber
		}

		return fmt.Errorf("inserting invoice: %w", err)
	}

	lineQuery := `
		INSERT INTO invoice_line_items (
			invoice_id, line_order, description, quantity, unit_price, tax_rate,
			line_subtotal, line_tax_amount, line_total
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	for i := range inv.Lines {
		line := &inv.Lines[i]
		line.InvoiceID = inv.ID

		err := dbTx.QueryRowContext(ctx, lineQuery,
			inv.ID,
			line.Order,
			line.Item.Description,
			line.Item.Quantity,
			line.Item.UnitPrice,
			line.Item.TaxRate,
			line.Amounts.Subtotal,
			line.Amounts.Tax,
			line.Amounts.Total,
		).Scan(&line.ID)
		if err != nil {
			return fmt.Errorf("inserting line %d: %w", line.Order, err)
		}

		line.Item.ID = line.ID.String()
	}

	if payment != nil {
		payment.InvoiceID = inv.ID

		paymentQuery := `
			INSERT INTO payments (invoice_id, amount, paid_at, method, reference, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`

		err := dbTx.QueryRowContext(ctx, paymentQuery,
			inv.ID,
			payment.Amount,
			payment.PaidAt,
			payment.Method,
			payment.Reference,
			payment.Notes,
		).Scan(&payment.ID)
		if err != nil {
			return fmt.Errorf("inserting payment: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	lines, err := s.listLines(ctx, id)
	if err != nil {
		return nil, err
	}

	inv.Lines = lines

	return inv, nil
}

func (s *Store) listLines(ctx context.Context, invoiceID uuid.UUID) ([]invoice.Line, error) {
	query := `
		SELECT id, invoice_id, line_order, description, quantity, unit_price, tax_rate,
			line_subtotal, line_tax_amount, line_total
		FROM invoice_line_items
		WHERE invoice_id = $1
		ORDER BY line_order ASC
	`

	rows, err := s.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("listing lines: %w", err)
	}
	defer rows.Close()

	var lines []invoice.Line

	for rows.Next() {
		var l invoice.Line
		if err := rows.Scan(
			&l.ID, &l.InvoiceID, &l.Order, &l.Item.Description, &l.Item.Quantity, &l.Item.UnitPrice, &l.Item.TaxRate,
			&l.Amounts.Subtotal, &l.Amounts.Tax, &l.Amounts.Total,
		); err != nil {
			return nil, fmt.Errorf("scanning line: %w", err)
		}

		l.Item.ID = l.ID.String()
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lines: %w", err)
	}

	return lines, nil
}

func (s *Store) ListInvoices(ctx context.Context, organizationID uuid.UUID) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices
		WHERE organization_id = $1
		ORDER BY issue_date DESC NULLS LAST, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}

	return invoices, nil
}

// UpdateStatus only touches the status column; timestamps set at creation are kept.
func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status invoice.Status) (*invoice.Invoice, error) {
	query := `
		UPDATE invoices SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + selectInvoiceColumns

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("updating invoice status: %w", err)
	}

	return inv, nil
}
