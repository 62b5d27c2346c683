package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("transaction not found")

// Type is the direction of a cash movement.
type Type string

const (
	TypeCredit Type = "credit" // money in
	TypeDebit  Type = "debit"  // money out
)

// Default categories. Category is stored as free text, so callers may use
// their own labels.
const (
	CategoryMilkSale        = "Milk Sale"
	CategoryCustomerPayment = "Customer Payment"
	CategoryFeed            = "Feed/Fodder"
	CategoryFuel            = "Fuel/Transport"
	CategorySalary          = "Salary"
	CategoryMedicine        = "Medicine"
	CategoryOther           = "Other"
)

// Categories lists the default category labels in display order.
func Categories() []string {
	return []string{
		CategoryMilkSale,
		CategoryCustomerPayment,
		CategoryFeed,
		CategoryFuel,
		CategorySalary,
		CategoryMedicine,
		CategoryOther,
	}
}

// Transaction is a standalone cash movement, independent of delivery
// records. CustomerID links a payment to a customer; nil means the
// movement is unattributed (a farm expense, usually). Transactions are
// immutable once created.
type Transaction struct {
	ID          uuid.UUID
	Type        Type
	Category    string
	Amount      int64 // paise
	Date        time.Time
	Description string
	CustomerID  *uuid.UUID
	CreatedAt   time.Time
}
