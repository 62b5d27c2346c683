// Package backup serializes the full data set to a versioned JSON
// snapshot and restores from one. A restore replaces everything, so a
// snapshot is validated completely before any stored data is touched.
package backup

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/entry"
	"github.com/javedfarm/dairybook/internal/ledger"
)

// SnapshotVersion is the current snapshot format version. Older versions
// are rejected on import.
const SnapshotVersion = 1

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is the complete exported data set. Dates are YYYY-MM-DD
// strings, timestamps RFC3339, so the file stays readable and diffable.
type Snapshot struct {
	Version      int                 `json:"version"`
	ExportedAt   time.Time           `json:"exportedAt"`
	Customers    []CustomerRecord    `json:"customers"`
	Entries      []EntryRecord       `json:"entries"`
	Transactions []TransactionRecord `json:"transactions"`
}

type CustomerRecord struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone,omitempty"`
	WhatsApp        string    `json:"whatsapp,omitempty"`
	Address         string    `json:"address,omitempty"`
	Rate            int64     `json:"rate"`
	DefaultQuantity float64   `json:"defaultQuantity"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
}

type EntryRecord struct {
	ID         string    `json:"id"`
	CustomerID uuid.UUID `json:"customerId"`
	Date       string    `json:"date"`
	Quantity   float64   `json:"quantity"`
	Rate       int64     `json:"rate"`
	Amount     int64     `json:"amount"`
	CreatedAt  time.Time `json:"createdAt"`
}

type TransactionRecord struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	Amount      int64      `json:"amount"`
	Date        string     `json:"date"`
	Description string     `json:"description,omitempty"`
	CustomerID  *uuid.UUID `json:"customerId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func customerRecord(c *customer.Customer) CustomerRecord {
	return CustomerRecord{
		ID:              c.ID,
		Name:            c.Name,
		Phone:           c.Phone,
		WhatsApp:        c.WhatsApp,
		Address:         c.Address,
		Rate:            c.Rate,
		DefaultQuantity: c.DefaultQuantity,
		Active:          c.Active,
		CreatedAt:       c.CreatedAt,
	}
}

func entryRecord(e *entry.Entry) EntryRecord {
	return EntryRecord{
		ID:         e.ID,
		CustomerID: e.CustomerID,
		Date:       dateutil.FormatDay(e.Date),
		Quantity:   e.Quantity,
		Rate:       e.Rate,
		Amount:     e.Amount,
		CreatedAt:  e.CreatedAt,
	}
}

func transactionRecord(tx *ledger.Transaction) TransactionRecord {
	return TransactionRecord{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Category:    tx.Category,
		Amount:      tx.Amount,
		Date:        dateutil.FormatDay(tx.Date),
		Description: tx.Description,
		CustomerID:  tx.CustomerID,
		CreatedAt:   tx.CreatedAt,
	}
}

// decode turns validated snapshot records back into domain values. It
// assumes Validate has already passed.
func (s *Snapshot) decode() ([]*customer.Customer, []*entry.Entry, []*ledger.Transaction) {
	customers := make([]*customer.Customer, 0, len(s.Customers))
	for _, r := range s.Customers {
		customers = append(customers, &customer.Customer{
			ID:              r.ID,
			Name:            r.Name,
			Phone:           r.Phone,
			WhatsApp:        r.WhatsApp,
			Address:         r.Address,
			Rate:            r.Rate,
			DefaultQuantity: r.DefaultQuantity,
			Active:          r.Active,
			CreatedAt:       r.CreatedAt,
		})
	}

	entries := make([]*entry.Entry, 0, len(s.Entries))
	for _, r := range s.Entries {
		date, _ := dateutil.ParseDay(r.Date)
		entries = append(entries, &entry.Entry{
			ID:         r.ID,
			CustomerID: r.CustomerID,
			Date:       date,
			Quantity:   r.Quantity,
			Rate:       r.Rate,
			Amount:     r.Amount,
			CreatedAt:  r.CreatedAt,
		})
	}

	transactions := make([]*ledger.Transaction, 0, len(s.Transactions))
	for _, r := range s.Transactions {
		date, _ := dateutil.ParseDay(r.Date)
		transactions = append(transactions, &ledger.Transaction{
			ID:          r.ID,
			Type:        ledger.Type(r.Type),
			Category:    r.Category,
			Amount:      r.Amount,
			Date:        date,
			Description: r.Description,
			CustomerID:  r.CustomerID,
			CreatedAt:   r.CreatedAt,
		})
	}

	return customers, entries, transactions
}

// Validate checks the whole snapshot for structural and referential
// integrity. It never mutates anything; import runs it in full before
// clearing stored data.
func (s *Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, s.Version)
	}

	customerIDs := make(map[uuid.UUID]bool, len(s.Customers))
	for i, c := range s.Customers {
		if c.ID == uuid.Nil {
			return fmt.Errorf("%w: customer %d has no id", ErrInvalidSnapshot, i)
		}

		if customerIDs[c.ID] {
			return fmt.Errorf("%w: duplicate customer id %s", ErrInvalidSnapshot, c.ID)
		}

		if c.Name == "" {
			return fmt.Errorf("%w: customer %s has no name", ErrInvalidSnapshot, c.ID)
		}

		if c.Rate < 0 || c.DefaultQuantity < 0 {
			return fmt.Errorf("%w: customer %s has negative rate or default", ErrInvalidSnapshot, c.ID)
		}

		customerIDs[c.ID] = true
	}

	entryIDs := make(map[string]bool, len(s.Entries))
	for _, e := range s.Entries {
		date, err := dateutil.ParseDay(e.Date)
		if err != nil {
			return fmt.Errorf("%w: entry %q: %v", ErrInvalidSnapshot, e.ID, err)
		}

		if want := entry.ID(date, e.CustomerID); e.ID != want {
			return fmt.Errorf("%w: entry id %q does not match its date and customer", ErrInvalidSnapshot, e.ID)
		}

		if entryIDs[e.ID] {
			return fmt.Errorf("%w: duplicate entry id %q", ErrInvalidSnapshot, e.ID)
		}

		if !customerIDs[e.CustomerID] {
			return fmt.Errorf("%w: entry %q references unknown customer %s", ErrInvalidSnapshot, e.ID, e.CustomerID)
		}

		if e.Quantity < 0 {
			return fmt.Errorf("%w: entry %q has negative quantity", ErrInvalidSnapshot, e.ID)
		}

		entryIDs[e.ID] = true
	}

	for _, tx := range s.Transactions {
		if tx.ID == uuid.Nil {
			return fmt.Errorf("%w: transaction has no id", ErrInvalidSnapshot)
		}

		if t := ledger.Type(tx.Type); t != ledger.TypeCredit && t != ledger.TypeDebit {
			return fmt.Errorf("%w: transaction %s has invalid type %q", ErrInvalidSnapshot, tx.ID, tx.Type)
		}

		if tx.Amount < 0 {
			return fmt.Errorf("%w: transaction %s has negative amount", ErrInvalidSnapshot, tx.ID)
		}

		if _, err := dateutil.ParseDay(tx.Date); err != nil {
			return fmt.Errorf("%w: transaction %s: %v", ErrInvalidSnapshot, tx.ID, err)
		}

		if tx.CustomerID != nil && !customerIDs[*tx.CustomerID] {
			return fmt.Errorf("%w: transaction %s references unknown customer %s", ErrInvalidSnapshot, tx.ID, *tx.CustomerID)
		}
	}

	return nil
}
