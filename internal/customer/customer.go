package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("customer not found")

// Customer is a delivery customer. Rate is paise per litre;
// DefaultQuantity is the litres pre-filled on the daily sheet before an
// explicit save (0 means unset). Customers are never hard-deleted, only
// deactivated.
type Customer struct {
	ID              uuid.UUID
	Name            string
	Phone           string
	WhatsApp        string
	Address         string
	Rate            int64
	DefaultQuantity float64
	Active          bool
	CreatedAt       time.Time
}
