// Package dashboard computes the summary figures shown on the home
// screen.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/entry"
	"github.com/javedfarm/dairybook/internal/ledger"
)

// DayTotal is one day's delivered quantity and billed amount.
type DayTotal struct {
	Date     time.Time
	Quantity float64
	Amount   int64
}

// Stats is the dashboard summary. Outstanding is lifetime billed amounts
// minus lifetime customer payments, so it carries balances across month
// boundaries.
type Stats struct {
	ActiveCustomers    int
	TodayQuantity      float64
	TodayAmount        int64
	MonthQuantity      float64
	MonthRevenue       int64
	OutstandingBalance int64
	Last7Days          []DayTotal
}

type Service struct {
	customers    *customer.Service
	entries      *entry.Service
	transactions *ledger.Service
}

func NewService(customers *customer.Service, entries *entry.Service, transactions *ledger.Service) *Service {
	return &Service{customers: customers, entries: entries, transactions: transactions}
}

// Stats computes the dashboard for the day containing now.
func (s *Service) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	today := dateutil.Day(now)

	customers, err := s.customers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	allEntries, err := s.entries.List(ctx, entry.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	credit := ledger.TypeCredit
	payments, err := s.transactions.List(ctx, ledger.ListFilter{Type: &credit})
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	stats := &Stats{ActiveCustomers: len(customers)}

	weekStart := today.AddDate(0, 0, -6)
	week := make(map[time.Time]*DayTotal, 7)

	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		total := &DayTotal{Date: day}
		week[day] = total
		stats.Last7Days = append(stats.Last7Days, *total)
	}

	var billed int64

	for _, e := range allEntries {
		billed += e.Amount

		if e.Date.Equal(today) {
			stats.TodayQuantity += e.Quantity
			stats.TodayAmount += e.Amount
		}

		if dateutil.InMonth(e.Date, today) {
			stats.MonthQuantity += e.Quantity
			stats.MonthRevenue += e.Amount
		}

		if total, ok := week[e.Date]; ok {
			total.Quantity += e.Quantity
			total.Amount += e.Amount
		}
	}

	for i := range stats.Last7Days {
		stats.Last7Days[i] = *week[stats.Last7Days[i].Date]
	}

	var received int64
	for _, tx := range payments {
		received += tx.Amount
	}

	stats.OutstandingBalance = billed - received

	return stats, nil
}
