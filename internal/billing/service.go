package billing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/entry"
	"github.com/javedfarm/dairybook/internal/ledger"
)

type Service struct {
	customers    *customer.Service
	entries      *entry.Service
	transactions *ledger.Service
}

func NewService(customers *customer.Service, entries *entry.Service, transactions *ledger.Service) *Service {
	return &Service{customers: customers, entries: entries, transactions: transactions}
}

// MonthlyBills builds every customer's bill for the month containing
// month. The month is the closed interval of its first and last calendar
// day. A customer appears when the month holds any delivery, any payment,
// or a nonzero balance; customers with nothing in the month are left out
// even when active. Bills keep the store's name ordering, entries within a
// bill are sorted by date ascending.
func (s *Service) MonthlyBills(ctx context.Context, month time.Time) (*MonthSummary, error) {
	start, end := dateutil.MonthInterval(month)

	customers, err := s.customers.List(ctx, customer.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	entries, err := s.entries.List(ctx, entry.ListFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, fmt.Errorf("listing entries for %s: %w", dateutil.FormatMonth(month), err)
	}

	credit := ledger.TypeCredit
	payments, err := s.transactions.List(ctx, ledger.ListFilter{
		Type:      &credit,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("listing payments for %s: %w", dateutil.FormatMonth(month), err)
	}

	entriesByCustomer := make(map[uuid.UUID][]*entry.Entry)
	for _, e := range entries {
		entriesByCustomer[e.CustomerID] = append(entriesByCustomer[e.CustomerID], e)
	}

	paidByCustomer := make(map[uuid.UUID]int64)
	for _, tx := range payments {
		if tx.CustomerID == nil {
			continue
		}

		paidByCustomer[*tx.CustomerID] += tx.Amount
	}

	summary := &MonthSummary{}

	for _, c := range customers {
		bill := buildBill(c, entriesByCustomer[c.ID], paidByCustomer[c.ID])
		if bill == nil {
			continue
		}

		summary.Bills = append(summary.Bills, bill)
		summary.TotalQuantity += bill.TotalQuantity
		summary.TotalAmount += bill.TotalAmount
		summary.TotalPaid += bill.PaidAmount
		summary.TotalBalance += bill.Balance
	}

	return summary, nil
}

// CustomerBill builds a single customer's bill for the month.
func (s *Service) CustomerBill(ctx context.Context, customerID uuid.UUID, month time.Time) (*Bill, error) {
	c, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	start, end := dateutil.MonthInterval(month)

	entries, err := s.entries.List(ctx, entry.ListFilter{
		CustomerID: &customerID,
		StartDate:  &start,
		EndDate:    &end,
	})
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	credit := ledger.TypeCredit
	payments, err := s.transactions.List(ctx, ledger.ListFilter{
		Type:       &credit,
		CustomerID: &customerID,
		StartDate:  &start,
		EndDate:    &end,
	})
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	var paid int64
	for _, tx := range payments {
		paid += tx.Amount
	}

	bill := buildBill(c, entries, paid)
	if bill == nil {
		bill = &Bill{Customer: c, Status: StatusPaid}
	}

	return bill, nil
}

// buildBill totals one customer's month. Returns nil when the customer has
// nothing to show for the month.
func buildBill(c *customer.Customer, entries []*entry.Entry, paid int64) *Bill {
	bill := &Bill{
		Customer:   c,
		Entries:    entries,
		PaidAmount: paid,
	}

	for _, e := range entries {
		bill.TotalQuantity += e.Quantity
		bill.TotalAmount += e.Amount
	}

	bill.Balance = bill.TotalAmount - bill.PaidAmount

	if bill.TotalQuantity == 0 && bill.PaidAmount == 0 && bill.Balance == 0 {
		return nil
	}

	sort.Slice(bill.Entries, func(i, j int) bool {
		return bill.Entries[i].Date.Before(bill.Entries[j].Date)
	})

	if bill.Balance <= 0 {
		bill.Status = StatusPaid
	} else {
		bill.Status = StatusDue
	}

	return bill
}
