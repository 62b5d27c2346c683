package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/entry"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, customer_id, date, quantity, rate, amount, created_at
func scanEntry(s scanner) (*entry.Entry, error) {
	var e entry.Entry

	var customerID, date, createdAt string

	if err := s.Scan(&e.ID, &customerID, &date, &e.Quantity, &e.Rate, &e.Amount, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("parsing entry customer id: %w", err)
	}

	e.CustomerID = parsed

	day, err := dateutil.ParseDay(date)
	if err != nil {
		return nil, err
	}

	e.Date = day

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	e.CreatedAt = ts

	return &e, nil
}

const selectEntryColumns = `id, customer_id, date, quantity, rate, amount, created_at`

func (s *Store) UpsertEntry(ctx context.Context, e *entry.Entry) error {
	query := `
		INSERT INTO entries (id, customer_id, date, quantity, rate, amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			quantity   = excluded.quantity,
			rate       = excluded.rate,
			amount     = excluded.amount,
			created_at = excluded.created_at
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.CustomerID.String(),
		dateutil.FormatDay(e.Date),
		e.Quantity,
		e.Rate,
		e.Amount,
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting entry: %w", err)
	}

	return nil
}

// DeleteEntry removes the record with the given id. Deleting an id that
// does not exist is not an error; the save path deletes blindly.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, filter entry.ListFilter) ([]*entry.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM entries WHERE 1=1`

	var args []any

	if filter.Date != nil {
		query += ` AND date = ?`

		args = append(args, dateutil.FormatDay(*filter.Date))
	}

	if filter.CustomerID != nil {
		query += ` AND customer_id = ?`

		args = append(args, filter.CustomerID.String())
	}

	if filter.StartDate != nil {
		query += ` AND date >= ?`

		args = append(args, dateutil.FormatDay(*filter.StartDate))
	}

	if filter.EndDate != nil {
		query += ` AND date <= ?`

		args = append(args, dateutil.FormatDay(*filter.EndDate))
	}

	query += ` ORDER BY date ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []*entry.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entry rows: %w", err)
	}

	return entries, nil
}
