package ledgercsv_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/javedfarm/dairybook/internal/ledger"
	"github.com/javedfarm/dairybook/internal/ledgercsv"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1234.56", 123456},
		{"1234", 123400},
		{"1,234.56", 123456},
		{"1.234,56", 123456},
		{"1,234", 123400},
		{"₹ 500.00", 50000},
		{"-45.50", -4550},
		{"+10", 1000},
		{"0.5", 50},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ledgercsv.ParseAmount(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ledgercsv.ParseAmount("")
	assert.Error(t, err)

	_, err = ledgercsv.ParseAmount("abc")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2024-03-15", "15-03-2024", "15/03/2024"} {
		got, err := ledgercsv.ParseDate(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := ledgercsv.ParseDate("03-15-2024")
	assert.Error(t, err)
}

func TestParse_HeaderNotFirstLine(t *testing.T) {
	input := strings.Join([]string{
		"Javed Dairy Farm cash book",
		"Exported 2024-03-31",
		"Date,Type,Category,Amount,Note",
		"2024-03-01,debit,Feed/Fodder,1200.00,bales",
		"2024-03-02,credit,Customer Payment,500,",
		"not-a-date,debit,Other,10,bad row",
	}, "\n")

	result, err := ledgercsv.Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, ledger.TypeDebit, result.Rows[0].Type)
	assert.Equal(t, int64(120000), result.Rows[0].Amount)
	assert.Equal(t, "bales", result.Rows[0].Description)
	assert.Equal(t, ledger.TypeCredit, result.Rows[1].Type)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 6, result.Skipped[0].Line)
}

func TestParse_SignedAmountSetsDirection(t *testing.T) {
	input := "Date,Amount\n2024-03-01,-350.00\n"

	result, err := ledgercsv.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, ledger.TypeDebit, result.Rows[0].Type)
	assert.Equal(t, int64(35000), result.Rows[0].Amount)
}

func TestParse_NoHeader(t *testing.T) {
	_, err := ledgercsv.Parse(strings.NewReader("just,some,cells\n1,2,3\n"))
	assert.Error(t, err)
}

func TestExportParse_RoundTrip(t *testing.T) {
	id := uuid.New()
	transactions := []*ledger.Transaction{
		{
			ID:          id,
			Type:        ledger.TypeDebit,
			Category:    ledger.CategoryFuel,
			Amount:      45000,
			Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			Description: "diesel",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ledgercsv.Export(&buf, transactions))

	// Exported files open in Excel via the BOM.
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))

	result, err := ledgercsv.Parse(bytes.NewReader(buf.Bytes()[3:]))
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, transactions[0].Date, row.Date)
	assert.Equal(t, transactions[0].Type, row.Type)
	assert.Equal(t, transactions[0].Category, row.Category)
	assert.Equal(t, transactions[0].Amount, row.Amount)
	assert.Equal(t, transactions[0].Description, row.Description)
}

func TestImporter(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	importer := ledgercsv.NewImporter(ledger.NewService(repo))

	repo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
			assert.Equal(t, ledger.TypeDebit, tx.Type)
			assert.Equal(t, int64(120000), tx.Amount)
			return nil
		})

	input := "Date,Type,Category,Amount\n2024-03-01,debit,Feed/Fodder,1200.00\nbad,debit,Other,1\n"

	result, err := importer.Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Len(t, result.Skipped, 1)
}
