package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/stefifm/dashboard/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.CustomerID,
		inv.Amount,
		inv.Status,
		inv.Date,
	).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4
	`

	_, err := s.db.ExecContext(ctx, query,
		inv.CustomerID,
		inv.Amount,
		inv.Status,
		inv.ID,
	)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM invoices WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `
		SELECT id, customer_id::text, amount, status, date
		FROM invoices
		WHERE id = $1
	`

	var (
		inv    invoice.Invoice
		status string
	)

	err := s.db.QueryRowContext(ctx, query, id).Scan(&inv.ID, &inv.CustomerID, &inv.Amount, &status, &inv.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	inv.Status = invoice.Status(status)

	return &inv, nil
}

// ListInvoices returns invoices newest first. A non-empty query matches, case-insensitively,
// the customer name or email, the amount, the date or the status.
func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.ListItem, error) {
	query := `
		SELECT i.id, i.customer_id::text, i.amount, i.status, i.date, c.name, c.email
		FROM invoices i
		JOIN customers c ON i.customer_id = c.id`

	var args []any

	if filter.Query != "" {
		query += `
		WHERE c.name ILIKE $1
			OR c.email ILIKE $1
			OR i.amount::text ILIKE $1
			OR i.date::text ILIKE $1
			OR i.status ILIKE $1`

		args = append(args, "%"+filter.Query+"%")
	}

	query += " ORDER BY i.date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var items []*invoice.ListItem

	for rows.Next() {
		var (
			item   invoice.ListItem
			status string
		)

		if err := rows.Scan(
			&item.ID, &item.CustomerID, &item.Amount, &status, &item.Date,
			&item.CustomerName, &item.CustomerEmail,
		); err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		item.Status = invoice.Status(status)
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return items, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]*invoice.Customer, error) {
	query := `
		SELECT id, name, email, image_url
		FROM customers
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*invoice.Customer

	for rows.Next() {
		var c invoice.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *invoice.Customer) error {
	query := `
		INSERT INTO customers (name, email, image_url)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query, c.Name, c.Email, c.ImageURL).Scan(&c.ID); err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}
