package entry_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/entry"
)

func TestID_Deterministic(t *testing.T) {
	customerID := uuid.New()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	first := entry.ID(date, customerID)
	second := entry.ID(date, customerID)

	assert.Equal(t, first, second)
	assert.Equal(t, "2024-03-15-"+customerID.String(), first)

	other := entry.ID(date.AddDate(0, 0, 1), customerID)
	assert.NotEqual(t, first, other)
}

func TestNew_SnapshotsCurrentRate(t *testing.T) {
	c := &customer.Customer{
		ID:   uuid.New(),
		Name: "Ali",
		Rate: 50,
	}
	date := time.Date(2024, 3, 15, 18, 30, 0, 0, time.FixedZone("IST", 19800))

	e := entry.New(date, c, 2.5)

	assert.Equal(t, c.ID, e.CustomerID)
	assert.Equal(t, "2024-03-15", e.Date.Format(time.DateOnly))
	assert.Equal(t, 2.5, e.Quantity)
	assert.Equal(t, int64(50), e.Rate)
	assert.Equal(t, int64(125), e.Amount)
}

func TestAmount_Rounds(t *testing.T) {
	assert.Equal(t, int64(125), entry.Amount(2.5, 50))
	assert.Equal(t, int64(17), entry.Amount(0.33, 51))
	assert.Equal(t, int64(0), entry.Amount(0, 100))
}

func TestDecidePersistence(t *testing.T) {
	tests := []struct {
		name            string
		quantity        float64
		defaultQuantity float64
		want            entry.Action
	}{
		{"PositiveQuantity", 2, 0, entry.ActionUpsert},
		{"ZeroWithDefault", 0, 1.5, entry.ActionUpsert},
		{"ZeroNoDefault", 0, 0, entry.ActionDelete},
		{"PositiveBoth", 3, 1, entry.ActionUpsert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entry.DecidePersistence(tt.quantity, tt.defaultQuantity))
		})
	}
}
