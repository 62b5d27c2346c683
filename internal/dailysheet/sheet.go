package dailysheet

import (
	"time"

	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/entry"
)

// Line is one customer's state on a daily sheet. Saved means the quantity
// has been committed to the store; an unsaved line shows only the
// customer's default or an in-memory edit.
type Line struct {
	Quantity float64
	Saved    bool
}

// Sheet is the reconciliation view for one calendar day. It is a value:
// merge operations return a new Sheet instead of mutating shared state.
type Sheet struct {
	Date  time.Time
	lines map[uuid.UUID]Line
}

// Line returns the line for a customer, if the customer is on the sheet.
func (s Sheet) Line(customerID uuid.UUID) (Line, bool) {
	l, ok := s.lines[customerID]
	return l, ok
}

// Lines returns a copy of the per-customer lines.
func (s Sheet) Lines() map[uuid.UUID]Line {
	out := make(map[uuid.UUID]Line, len(s.lines))
	for id, l := range s.lines {
		out[id] = l
	}

	return out
}

// WithLine returns a new Sheet with the customer's line replaced.
func (s Sheet) WithLine(customerID uuid.UUID, line Line) Sheet {
	lines := s.Lines()
	lines[customerID] = line

	return Sheet{Date: s.Date, lines: lines}
}

// TotalQuantity sums the working quantities of every line.
func (s Sheet) TotalQuantity() float64 {
	var total float64
	for _, l := range s.lines {
		total += l.Quantity
	}

	return total
}

// ProjectedAmount prices every working quantity at the given per-customer
// rates, for the running total shown while entering a day.
func (s Sheet) ProjectedAmount(rates map[uuid.UUID]int64) int64 {
	var total int64

	for id, l := range s.lines {
		total += entry.Amount(l.Quantity, rates[id])
	}

	return total
}
