package entry

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/dateutil"
)

var ErrNotFound = errors.New("entry not found")

// Entry records one customer's delivered quantity for one calendar day.
// Rate is a snapshot of the customer's rate at save time; Amount is
// computed once at save time and never recomputed, so later rate changes
// do not rewrite history.
type Entry struct {
	ID         string
	CustomerID uuid.UUID
	Date       time.Time
	Quantity   float64
	Rate       int64
	Amount     int64
	CreatedAt  time.Time
}

// ID derives the deterministic entry id for a (date, customer) pair.
// One entry per customer per day: saving twice overwrites the same record.
func ID(date time.Time, customerID uuid.UUID) string {
	return fmt.Sprintf("%s-%s", dateutil.FormatDay(date), customerID)
}

// New builds the candidate entry for saving quantity on date, pricing it
// at the customer's current rate.
func New(date time.Time, c *customer.Customer, quantity float64) *Entry {
	day := dateutil.Day(date)

	return &Entry{
		ID:         ID(day, c.ID),
		CustomerID: c.ID,
		Date:       day,
		Quantity:   quantity,
		Rate:       c.Rate,
		Amount:     Amount(quantity, c.Rate),
		CreatedAt:  time.Now().UTC(),
	}
}

// Amount prices a quantity at a rate, in paise.
func Amount(quantity float64, rate int64) int64 {
	return int64(math.Round(quantity * float64(rate)))
}

// Action is the outcome of the save persistence policy.
type Action int

const (
	ActionUpsert Action = iota
	ActionDelete
)

// DecidePersistence decides whether saving quantity should write or delete
// the day's record. A zero save still writes when the customer has a
// positive default quantity: without the stored zero, the default would
// silently resurface on the next load. A zero save with no default deletes
// any existing record, keeping the store free of no-op rows.
func DecidePersistence(quantity, defaultQuantity float64) Action {
	if quantity > 0 || defaultQuantity > 0 {
		return ActionUpsert
	}

	return ActionDelete
}
