// Package dailysheet reconciles each active customer's configured default
// quantity with the entries persisted for a calendar day, and enforces the
// save persistence policy.
package dailysheet

import (
	"context"
	"fmt"

	"time"

	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/entry"
)

type Service struct {
	customers *customer.Service
	entries   *entry.Service
}

func NewService(customers *customer.Service, entries *entry.Service) *Service {
	return &Service{customers: customers, entries: entries}
}

// Load builds the sheet for a date. Every active customer starts at its
// default quantity, unsaved; persisted entries for the date then overwrite
// the quantity and mark the customer saved. A default is a suggestion, not
// a committed fact, so it never shows as saved.
func (s *Service) Load(ctx context.Context, date time.Time) (Sheet, error) {
	day := dateutil.Day(date)

	customers, err := s.customers.ListActive(ctx)
	if err != nil {
		return Sheet{}, fmt.Errorf("loading customers: %w", err)
	}

	persisted, err := s.entries.ListForDate(ctx, day)
	if err != nil {
		return Sheet{}, fmt.Errorf("loading entries for %s: %w", dateutil.FormatDay(day), err)
	}

	lines := make(map[uuid.UUID]Line, len(customers))
	for _, c := range customers {
		lines[c.ID] = Line{Quantity: c.DefaultQuantity, Saved: false}
	}

	for _, e := range persisted {
		// Entries of deactivated customers stay off the sheet.
		if _, ok := lines[e.CustomerID]; !ok {
			continue
		}

		lines[e.CustomerID] = Line{Quantity: e.Quantity, Saved: true}
	}

	return Sheet{Date: day, lines: lines}, nil
}

// Save commits a quantity for one customer on a date. The entry snapshots
// the customer's current rate. Whether the record is written or deleted
// follows entry.DecidePersistence. On failure the error propagates and the
// caller must not mark the customer saved.
func (s *Service) Save(ctx context.Context, date time.Time, c *customer.Customer, quantity float64) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must be non-negative")
	}

	candidate := entry.New(date, c, quantity)

	switch entry.DecidePersistence(quantity, c.DefaultQuantity) {
	case entry.ActionUpsert:
		if err := s.entries.Upsert(ctx, candidate); err != nil {
			return fmt.Errorf("saving entry for %s: %w", c.Name, err)
		}
	case entry.ActionDelete:
		if err := s.entries.Delete(ctx, candidate.ID); err != nil {
			return fmt.Errorf("deleting entry for %s: %w", c.Name, err)
		}
	}

	return nil
}

// CopyFailure reports one customer's failed save during CopyPreviousDay.
type CopyFailure struct {
	CustomerID uuid.UUID
	Err        error
}

// CopyResult summarizes a CopyPreviousDay run. Saves are independent, so
// some customers may be copied while others fail.
type CopyResult struct {
	Copied   []uuid.UUID
	Failures []CopyFailure
}

// CopyPreviousDay copies the prior day's quantities onto the target date
// for every customer still unsaved there. Already-saved customers are
// never overwritten. Each copy is priced at the customer's current rate,
// not the prior day's snapshot, and persists through Save.
func (s *Service) CopyPreviousDay(ctx context.Context, date time.Time) (CopyResult, error) {
	day := dateutil.Day(date)

	sheet, err := s.Load(ctx, day)
	if err != nil {
		return CopyResult{}, err
	}

	previous, err := s.entries.ListForDate(ctx, dateutil.PreviousDay(day))
	if err != nil {
		return CopyResult{}, fmt.Errorf("loading previous day: %w", err)
	}

	customers, err := s.customers.ListActive(ctx)
	if err != nil {
		return CopyResult{}, fmt.Errorf("loading customers: %w", err)
	}

	byID := make(map[uuid.UUID]*customer.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	var result CopyResult

	for _, prev := range previous {
		line, ok := sheet.Line(prev.CustomerID)
		if !ok || line.Saved {
			continue
		}

		c := byID[prev.CustomerID]
		if c == nil {
			continue
		}

		if err := s.Save(ctx, day, c, prev.Quantity); err != nil {
			result.Failures = append(result.Failures, CopyFailure{CustomerID: c.ID, Err: err})
			continue
		}

		result.Copied = append(result.Copied, c.ID)
	}

	return result, nil
}
