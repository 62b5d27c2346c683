package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/customer/store"
	"github.com/javedfarm/dairybook/internal/database"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db)
}

func sample(name string) *customer.Customer {
	return &customer.Customer{
		ID:              uuid.New(),
		Name:            name,
		Phone:           "9876543210",
		Rate:            6000,
		DefaultQuantity: 2,
		Active:          true,
		CreatedAt:       time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestUpsertGet(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	c := sample("Ali")
	require.NoError(t, s.UpsertCustomer(ctx, c))

	got, err := s.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	// Second upsert with the same id updates in place.
	c.Rate = 6500
	c.Active = false
	require.NoError(t, s.UpsertCustomer(ctx, c))

	got, err = s.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6500), got.Rate)
	assert.False(t, got.Active)
}

func TestGet_NotFound(t *testing.T) {
	s := newStore(t)

	_, err := s.GetCustomer(context.Background(), uuid.New())
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestList(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	active := sample("Bilal")
	inactive := sample("Ali")
	inactive.Active = false

	require.NoError(t, s.UpsertCustomer(ctx, active))
	require.NoError(t, s.UpsertCustomer(ctx, inactive))

	all, err := s.ListCustomers(ctx, customer.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Name ascending.
	assert.Equal(t, "Ali", all[0].Name)
	assert.Equal(t, "Bilal", all[1].Name)

	actives, err := s.ListCustomers(ctx, customer.ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, actives, 1)
	assert.Equal(t, active.ID, actives[0].ID)
}
