package customer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/javedfarm/dairybook/internal/customer"
)

func TestCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := customer.NewMockRepository(ctrl)
	svc := customer.NewService(repo)

	repo.EXPECT().
		UpsertCustomer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *customer.Customer) error {
			assert.NotEmpty(t, c.ID)
			assert.True(t, c.Active)
			assert.False(t, c.CreatedAt.IsZero())
			return nil
		})

	c, err := svc.Create(context.Background(), customer.CreateParams{
		Name:            "Ali",
		Rate:            6000,
		DefaultQuantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ali", c.Name)
}

func TestCreate_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := customer.NewService(customer.NewMockRepository(ctrl))

	_, err := svc.Create(context.Background(), customer.CreateParams{Rate: 100})
	assert.Error(t, err, "missing name")

	_, err = svc.Create(context.Background(), customer.CreateParams{Name: "Ali", Rate: -1})
	assert.Error(t, err, "negative rate")

	_, err = svc.Create(context.Background(), customer.CreateParams{Name: "Ali", DefaultQuantity: -1})
	assert.Error(t, err, "negative default quantity")
}

func TestDeactivate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := customer.NewMockRepository(ctrl)
	svc := customer.NewService(repo)

	c := &customer.Customer{Name: "Ali", Active: true}

	repo.EXPECT().
		GetCustomer(gomock.Any(), c.ID).
		Return(c, nil)
	repo.EXPECT().
		UpsertCustomer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got *customer.Customer) error {
			assert.False(t, got.Active)
			return nil
		})

	require.NoError(t, svc.Deactivate(context.Background(), c.ID))
}
