package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	backupStore "github.com/javedfarm/dairybook/internal/backup/store"
	"github.com/javedfarm/dairybook/internal/customer"
	customerStore "github.com/javedfarm/dairybook/internal/customer/store"
	"github.com/javedfarm/dairybook/internal/database"
	"github.com/javedfarm/dairybook/internal/entry"
	entryStore "github.com/javedfarm/dairybook/internal/entry/store"
	"github.com/javedfarm/dairybook/internal/ledger"
	ledgerStore "github.com/javedfarm/dairybook/internal/ledger/store"
)

func TestReplaceAll(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	customers := customerStore.New(db)
	entries := entryStore.New(db)
	transactions := ledgerStore.New(db)

	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// Seed data that the restore must wipe.
	old := &customer.Customer{ID: uuid.New(), Name: "Old", Active: true, CreatedAt: created}
	require.NoError(t, customers.UpsertCustomer(ctx, old))
	require.NoError(t, entries.UpsertEntry(ctx, &entry.Entry{
		ID:         entry.ID(day, old.ID),
		CustomerID: old.ID,
		Date:       day,
		Quantity:   1,
		CreatedAt:  created,
	}))

	restored := &customer.Customer{
		ID:        uuid.New(),
		Name:      "Ali",
		Rate:      6000,
		Active:    true,
		CreatedAt: created,
	}
	restoredEntry := &entry.Entry{
		ID:         entry.ID(day, restored.ID),
		CustomerID: restored.ID,
		Date:       day,
		Quantity:   2,
		Rate:       6000,
		Amount:     12000,
		CreatedAt:  created,
	}
	restoredTx := &ledger.Transaction{
		ID:         uuid.New(),
		Type:       ledger.TypeCredit,
		Category:   ledger.CategoryCustomerPayment,
		Amount:     5000,
		Date:       day,
		CustomerID: &restored.ID,
		CreatedAt:  created,
	}
	farmExpense := &ledger.Transaction{
		ID:        uuid.New(),
		Type:      ledger.TypeDebit,
		Category:  ledger.CategoryFeed,
		Amount:    30000,
		Date:      day,
		CreatedAt: created,
	}

	err = backupStore.New(db).ReplaceAll(ctx,
		[]*customer.Customer{restored},
		[]*entry.Entry{restoredEntry},
		[]*ledger.Transaction{restoredTx, farmExpense},
	)
	require.NoError(t, err)

	gotCustomers, err := customers.ListCustomers(ctx, customer.ListFilter{})
	require.NoError(t, err)
	require.Len(t, gotCustomers, 1)
	assert.Equal(t, restored, gotCustomers[0])

	gotEntries, err := entries.ListEntries(ctx, entry.ListFilter{})
	require.NoError(t, err)
	require.Len(t, gotEntries, 1)
	assert.Equal(t, restoredEntry, gotEntries[0])

	gotTxs, err := transactions.ListTransactions(ctx, ledger.ListFilter{})
	require.NoError(t, err)
	require.Len(t, gotTxs, 2)

	var attributed, unattributed int
	for _, tx := range gotTxs {
		if tx.CustomerID != nil {
			attributed++
			assert.Equal(t, restored.ID, *tx.CustomerID)
		} else {
			unattributed++
		}
	}

	assert.Equal(t, 1, attributed)
	assert.Equal(t, 1, unattributed)
}
