package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/customer"
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

// scanCustomer reads a customer row.
// Expected column order: id, name, phone, whatsapp, address, rate, default_quantity, active, created_at
func scanCustomer(s scanner) (*customer.Customer, error) {
	var c customer.Customer

	var id, createdAt string

	var active int

	if err := s.Scan(
		&id, &c.Name, &c.Phone, &c.WhatsApp, &c.Address,
		&c.Rate, &c.DefaultQuantity, &active, &createdAt,
	); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing customer id: %w", err)
	}

	c.ID = parsed
	c.Active = active == 1

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	c.CreatedAt = ts

	return &c, nil
}

const selectCustomerColumns = `
	id, name, phone, whatsapp, address, rate, default_quantity, active, created_at
`

func (s *Store) UpsertCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (id, name, phone, whatsapp, address, rate, default_quantity, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name             = excluded.name,
			phone            = excluded.phone,
			whatsapp         = excluded.whatsapp,
			address          = excluded.address,
			rate             = excluded.rate,
			default_quantity = excluded.default_quantity,
			active           = excluded.active
	`

	active := 0
	if c.Active {
		active = 1
	}

	_, err := s.db.ExecContext(ctx, query,
		c.ID.String(),
		c.Name,
		c.Phone,
		c.WhatsApp,
		c.Address,
		c.Rate,
		c.DefaultQuantity,
		active,
		c.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting customer: %w", err)
	}

	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + ` FROM customers WHERE id = ?`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) ListCustomers(ctx context.Context, filter customer.ListFilter) ([]*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + ` FROM customers`

	if filter.ActiveOnly {
		query += ` WHERE active = 1`
	}

	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}
