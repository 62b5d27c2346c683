package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/ledger"
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

// Expected column order: id, type, category, amount, date, description, customer_id, created_at
func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var id, typeStr, date, createdAt string

	var customerID sql.NullString

	if err := s.Scan(&id, &typeStr, &tx.Category, &tx.Amount, &date, &tx.Description, &customerID, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing transaction id: %w", err)
	}

	tx.ID = parsed
	tx.Type = ledger.Type(typeStr)

	if customerID.Valid {
		cid, err := uuid.Parse(customerID.String)
		if err != nil {
			return nil, fmt.Errorf("parsing transaction customer id: %w", err)
		}

		tx.CustomerID = &cid
	}

	day, err := dateutil.ParseDay(date)
	if err != nil {
		return nil, err
	}

	tx.Date = day

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	tx.CreatedAt = ts

	return &tx, nil
}

const selectTransactionColumns = `id, type, category, amount, date, description, customer_id, created_at`

func (s *Store) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (id, type, category, amount, date, description, customer_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var customerID any
	if tx.CustomerID != nil {
		customerID = tx.CustomerID.String()
	}

	_, err := s.db.ExecContext(ctx, query,
		tx.ID.String(),
		string(tx.Type),
		tx.Category,
		tx.Amount,
		dateutil.FormatDay(tx.Date),
		tx.Description,
		customerID,
		tx.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE 1=1`

	var args []any

	if filter.Type != nil {
		query += ` AND type = ?`

		args = append(args, string(*filter.Type))
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

	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}
