package database

import (
	"database/sql"
	"fmt"
)

// migrations holds the schema statements. SQLite executes one statement at
// a time; all statements are idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		phone            TEXT NOT NULL DEFAULT '',
		whatsapp         TEXT NOT NULL DEFAULT '',
		address          TEXT NOT NULL DEFAULT '',
		rate             INTEGER NOT NULL DEFAULT 0,
		default_quantity REAL NOT NULL DEFAULT 0,
		active           INTEGER NOT NULL DEFAULT 1,
		created_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS entries (
		id          TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		date        TEXT NOT NULL,
		quantity    REAL NOT NULL DEFAULT 0,
		rate        INTEGER NOT NULL DEFAULT 0,
		amount      INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_customer ON entries(customer_id)`,

	`CREATE TABLE IF NOT EXISTS transactions (
		id          TEXT PRIMARY KEY,
		type        TEXT NOT NULL,
		category    TEXT NOT NULL DEFAULT '',
		amount      INTEGER NOT NULL DEFAULT 0,
		date        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		customer_id TEXT,
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(customer_id)`,
}

func Migrate(db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("applying migration: %w", err)
		}
	}

	return nil
}
