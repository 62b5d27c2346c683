package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/javedfarm/dairybook/internal/ledger"
)

func TestCreate_NormalizesTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	repo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
			assert.NotEmpty(t, tx.ID)
			assert.False(t, tx.CreatedAt.IsZero())
			return nil
		})

	tx, err := svc.Create(context.Background(), ledger.CreateParams{
		Type:   ledger.TypeDebit,
		Amount: 250000,
		Date:   time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, ledger.CategoryOther, tx.Category, "empty category defaults")
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), tx.Date, "date truncated to the day")
}

func TestCreate_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := ledger.NewService(ledger.NewMockRepository(ctrl))

	_, err := svc.Create(context.Background(), ledger.CreateParams{Type: "transfer", Amount: 100})
	assert.Error(t, err, "unknown type")

	_, err = svc.Create(context.Background(), ledger.CreateParams{Type: ledger.TypeCredit, Amount: -1})
	assert.Error(t, err, "negative amount")
}

func TestListForMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().
		ListTransactions(gomock.Any(), ledger.ListFilter{StartDate: &start, EndDate: &end}).
		Return(nil, nil)

	_, err := svc.ListForMonth(context.Background(), time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
}
