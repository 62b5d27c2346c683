// Package billing aggregates a month's delivery entries and customer
// payments into per-customer bills.
package billing

import (
	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/entry"
)

// Status summarizes whether a bill still has money owed.
type Status string

const (
	StatusPaid Status = "paid"
	StatusDue  Status = "due"
)

// Bill is one customer's statement for a month. Amounts come from the
// stored entry snapshots, never recomputed from the customer's current
// rate. Balance can be negative when the customer paid more than the
// month's total; the overpayment is carried as-is.
type Bill struct {
	Customer      *customer.Customer
	Entries       []*entry.Entry
	TotalQuantity float64
	TotalAmount   int64
	PaidAmount    int64
	Balance       int64
	Status        Status
}

// MonthSummary totals a month across all bills.
type MonthSummary struct {
	Bills         []*Bill
	TotalQuantity float64
	TotalAmount   int64
	TotalPaid     int64
	TotalBalance  int64
}
