package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javedfarm/dairybook/internal/database"
	"github.com/javedfarm/dairybook/internal/entry"
	"github.com/javedfarm/dairybook/internal/entry/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db)
}

func sample(customerID uuid.UUID, date time.Time, qty float64) *entry.Entry {
	return &entry.Entry{
		ID:         entry.ID(date, customerID),
		CustomerID: customerID,
		Date:       date,
		Quantity:   qty,
		Rate:       6000,
		Amount:     entry.Amount(qty, 6000),
		CreatedAt:  time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestUpsert_SameIDOverwrites(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	customerID := uuid.New()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.UpsertEntry(ctx, sample(customerID, date, 2)))
	require.NoError(t, s.UpsertEntry(ctx, sample(customerID, date, 3.5)))

	entries, err := s.ListEntries(ctx, entry.ListFilter{Date: &date})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3.5, entries[0].Quantity)
	assert.Equal(t, entry.Amount(3.5, 6000), entries[0].Amount)
}

func TestDelete_MissingIDIsNoop(t *testing.T) {
	s := newStore(t)

	assert.NoError(t, s.DeleteEntry(context.Background(), "2024-03-01-"+uuid.NewString()))
}

func TestList_Filters(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()
	march1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	march2 := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	april1 := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.UpsertEntry(ctx, sample(first, march1, 1)))
	require.NoError(t, s.UpsertEntry(ctx, sample(first, march2, 2)))
	require.NoError(t, s.UpsertEntry(ctx, sample(second, march1, 3)))
	require.NoError(t, s.UpsertEntry(ctx, sample(first, april1, 4)))

	byDate, err := s.ListEntries(ctx, entry.ListFilter{Date: &march1})
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	byCustomer, err := s.ListEntries(ctx, entry.ListFilter{CustomerID: &first})
	require.NoError(t, err)
	assert.Len(t, byCustomer, 3)

	// Range covers March only, endpoints inclusive.
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	inRange, err := s.ListEntries(ctx, entry.ListFilter{StartDate: &march1, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, inRange, 3)

	// Date ascending.
	assert.True(t, !inRange[0].Date.After(inRange[1].Date))
	assert.True(t, !inRange[1].Date.After(inRange[2].Date))
}
