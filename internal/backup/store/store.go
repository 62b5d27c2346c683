// Package store implements the snapshot restore against SQLite. The whole
// replacement runs in one transaction so a failed restore leaves the
// previous data intact.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/entry"
	"github.com/javedfarm/dairybook/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ReplaceAll(ctx context.Context, customers []*customer.Customer, entries []*entry.Entry, transactions []*ledger.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Children first, customers last.
	for _, table := range []string{"entries", "transactions", "customers"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, c := range customers {
		active := 0
		if c.Active {
			active = 1
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO customers (id, name, phone, whatsapp, address, rate, default_quantity, active, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID.String(), c.Name, c.Phone, c.WhatsApp, c.Address,
			c.Rate, c.DefaultQuantity, active,
			c.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("restoring customer %s: %w", c.ID, err)
		}
	}

	for _, e := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO entries (id, customer_id, date, quantity, rate, amount, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.CustomerID.String(), dateutil.FormatDay(e.Date),
			e.Quantity, e.Rate, e.Amount,
			e.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("restoring entry %s: %w", e.ID, err)
		}
	}

	for _, lt := range transactions {
		var customerID any
		if lt.CustomerID != nil {
			customerID = lt.CustomerID.String()
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (id, type, category, amount, date, description, customer_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			lt.ID.String(), string(lt.Type), lt.Category, lt.Amount,
			dateutil.FormatDay(lt.Date), lt.Description, customerID,
			lt.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("restoring transaction %s: %w", lt.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing restore: %w", err)
	}

	return nil
}
