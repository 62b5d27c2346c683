package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/dashboard"
	"github.com/javedfarm/dairybook/internal/entry"
	"github.com/javedfarm/dairybook/internal/ledger"
)

func TestStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	customerRepo := customer.NewMockRepository(ctrl)
	entryRepo := entry.NewMockRepository(ctrl)
	ledgerRepo := ledger.NewMockRepository(ctrl)

	svc := dashboard.NewService(
		customer.NewService(customerRepo),
		entry.NewService(entryRepo),
		ledger.NewService(ledgerRepo),
	)

	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	lastMonth := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	c := &customer.Customer{ID: uuid.New(), Name: "Ali", Rate: 6000, Active: true}

	customerRepo.EXPECT().
		ListCustomers(gomock.Any(), gomock.Any()).
		Return([]*customer.Customer{c}, nil)
	entryRepo.EXPECT().
		ListEntries(gomock.Any(), gomock.Any()).
		Return([]*entry.Entry{
			{CustomerID: c.ID, Date: today, Quantity: 2, Amount: 12000},
			{CustomerID: c.ID, Date: yesterday, Quantity: 3, Amount: 18000},
			{CustomerID: c.ID, Date: lastMonth, Quantity: 1, Amount: 6000},
		}, nil)
	ledgerRepo.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any()).
		Return([]*ledger.Transaction{
			{Type: ledger.TypeCredit, Amount: 10000, Date: today, CustomerID: &c.ID},
			{Type: ledger.TypeCredit, Amount: 7777, Date: today}, // unattributed
		}, nil)

	stats, err := svc.Stats(context.Background(), today)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ActiveCustomers)
	assert.Equal(t, 2.0, stats.TodayQuantity)
	assert.Equal(t, int64(12000), stats.TodayAmount)
	assert.Equal(t, 5.0, stats.MonthQuantity)
	assert.Equal(t, int64(30000), stats.MonthRevenue)

	// Lifetime billed 36000 minus every credit, attributed or not.
	assert.Equal(t, int64(18223), stats.OutstandingBalance)

	require.Len(t, stats.Last7Days, 7)
	assert.Equal(t, today.AddDate(0, 0, -6), stats.Last7Days[0].Date)
	assert.Equal(t, today, stats.Last7Days[6].Date)
	assert.Equal(t, 3.0, stats.Last7Days[5].Quantity)
	assert.Equal(t, 2.0, stats.Last7Days[6].Quantity)
	assert.Zero(t, stats.Last7Days[0].Quantity)
}

func TestStats_OutstandingCountsUnattributedCredits(t *testing.T) {
	ctrl := gomock.NewController(t)
	customerRepo := customer.NewMockRepository(ctrl)
	entryRepo := entry.NewMockRepository(ctrl)
	ledgerRepo := ledger.NewMockRepository(ctrl)

	svc := dashboard.NewService(
		customer.NewService(customerRepo),
		entry.NewService(entryRepo),
		ledger.NewService(ledgerRepo),
	)

	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	c := &customer.Customer{ID: uuid.New(), Name: "Ali", Rate: 5000, Active: true}

	customerRepo.EXPECT().
		ListCustomers(gomock.Any(), gomock.Any()).
		Return([]*customer.Customer{c}, nil)
	entryRepo.EXPECT().
		ListEntries(gomock.Any(), gomock.Any()).
		Return([]*entry.Entry{
			{CustomerID: c.ID, Date: today, Quantity: 2, Amount: 10000},
		}, nil)
	ledgerRepo.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any()).
		Return([]*ledger.Transaction{
			{Type: ledger.TypeCredit, Amount: 4000, Date: today},
		}, nil)

	stats, err := svc.Stats(context.Background(), today)
	require.NoError(t, err)

	// A cash receipt with no customer link still reduces what is owed
	// overall.
	assert.Equal(t, int64(6000), stats.OutstandingBalance)
}
