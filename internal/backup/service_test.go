package backup_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/javedfarm/dairybook/internal/backup"
	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/entry"
	"github.com/javedfarm/dairybook/internal/ledger"
)

type fixture struct {
	svc          *backup.Service
	customerRepo *customer.MockRepository
	entryRepo    *entry.MockRepository
	ledgerRepo   *ledger.MockRepository
	replacer     *backup.MockReplacer
	dir          string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		customerRepo: customer.NewMockRepository(ctrl),
		entryRepo:    entry.NewMockRepository(ctrl),
		ledgerRepo:   ledger.NewMockRepository(ctrl),
		replacer:     backup.NewMockReplacer(ctrl),
		dir:          t.TempDir(),
	}
	f.svc = backup.NewService(
		customer.NewService(f.customerRepo),
		entry.NewService(f.entryRepo),
		ledger.NewService(f.ledgerRepo),
		f.replacer,
		f.dir,
	)

	return f
}

func (f *fixture) stubData(customers []*customer.Customer, entries []*entry.Entry, transactions []*ledger.Transaction) {
	f.customerRepo.EXPECT().
		ListCustomers(gomock.Any(), gomock.Any()).
		Return(customers, nil).
		AnyTimes()
	f.entryRepo.EXPECT().
		ListEntries(gomock.Any(), gomock.Any()).
		Return(entries, nil).
		AnyTimes()
	f.ledgerRepo.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any()).
		Return(transactions, nil).
		AnyTimes()
}

func sampleData() ([]*customer.Customer, []*entry.Entry, []*ledger.Transaction) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)

	c := &customer.Customer{
		ID:              uuid.New(),
		Name:            "Ali",
		Phone:           "9876543210",
		Rate:            6000,
		DefaultQuantity: 2,
		Active:          true,
		CreatedAt:       created,
	}
	e := &entry.Entry{
		ID:         entry.ID(day, c.ID),
		CustomerID: c.ID,
		Date:       day,
		Quantity:   2,
		Rate:       6000,
		Amount:     12000,
		CreatedAt:  created,
	}
	tx := &ledger.Transaction{
		ID:         uuid.New(),
		Type:       ledger.TypeCredit,
		Category:   ledger.CategoryCustomerPayment,
		Amount:     5000,
		Date:       day,
		CustomerID: &c.ID,
		CreatedAt:  created,
	}

	return []*customer.Customer{c}, []*entry.Entry{e}, []*ledger.Transaction{tx}
}

func TestExportImport_RoundTrip(t *testing.T) {
	f := newFixture(t)

	customers, entries, transactions := sampleData()
	f.stubData(customers, entries, transactions)

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportJSON(context.Background(), &buf))

	f.replacer.EXPECT().
		ReplaceAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, gotCustomers []*customer.Customer, gotEntries []*entry.Entry, gotTransactions []*ledger.Transaction) error {
			require.Len(t, gotCustomers, 1)
			assert.Equal(t, customers[0], gotCustomers[0])

			require.Len(t, gotEntries, 1)
			assert.Equal(t, entries[0], gotEntries[0])

			require.Len(t, gotTransactions, 1)
			assert.Equal(t, transactions[0], gotTransactions[0])
			return nil
		})

	require.NoError(t, f.svc.ImportJSON(context.Background(), &buf))
}

func TestImport_InvalidSnapshotDoesNotReplace(t *testing.T) {
	day := dateutil.FormatDay(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	orphanID := uuid.New()

	cases := map[string]*backup.Snapshot{
		"unsupported version": {Version: 99},
		"customer without name": {
			Version:   backup.SnapshotVersion,
			Customers: []backup.CustomerRecord{{ID: uuid.New(), Rate: 100}},
		},
		"entry for unknown customer": {
			Version: backup.SnapshotVersion,
			Entries: []backup.EntryRecord{{
				ID:         day + "-" + orphanID.String(),
				CustomerID: orphanID,
				Date:       day,
				Quantity:   1,
			}},
		},
		"transaction with bad type": {
			Version: backup.SnapshotVersion,
			Transactions: []backup.TransactionRecord{{
				ID:     uuid.New(),
				Type:   "transfer",
				Amount: 100,
				Date:   day,
			}},
		},
	}

	for name, snapshot := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)

			// No ReplaceAll expectation: the mock controller fails the
			// test if a destructive call slips through.
			err := f.svc.Import(context.Background(), snapshot)
			require.ErrorIs(t, err, backup.ErrInvalidSnapshot)
		})
	}
}

func TestValidate_EntryIDMismatch(t *testing.T) {
	c := backup.CustomerRecord{ID: uuid.New(), Name: "Ali", Active: true}
	snapshot := &backup.Snapshot{
		Version:   backup.SnapshotVersion,
		Customers: []backup.CustomerRecord{c},
		Entries: []backup.EntryRecord{{
			ID:         "2024-03-02-" + c.ID.String(), // claims a different day
			CustomerID: c.ID,
			Date:       "2024-03-01",
			Quantity:   1,
		}},
	}

	require.ErrorIs(t, snapshot.Validate(), backup.ErrInvalidSnapshot)
}

func TestMirror_WritesMirrorAndHistory(t *testing.T) {
	f := newFixture(t)

	customers, entries, transactions := sampleData()
	f.stubData(customers, entries, transactions)

	require.NoError(t, f.svc.Mirror(context.Background()))

	data, err := os.ReadFile(filepath.Join(f.dir, "backup.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 1`)

	info, err := f.svc.Info()
	require.NoError(t, err)
	assert.True(t, info.MirrorExists)
	assert.Equal(t, 1, info.HistoryCount)
}

func TestMirror_PrunesHistory(t *testing.T) {
	f := newFixture(t)
	f.stubData(nil, nil, nil)

	historyDir := filepath.Join(f.dir, "history")
	require.NoError(t, os.MkdirAll(historyDir, 0o755))

	for i := 0; i < 105; i++ {
		name := filepath.Join(historyDir, time.Date(2024, 1, 1, 0, 0, i, 0, time.UTC).Format("backup-20060102-150405.000.json"))
		require.NoError(t, os.WriteFile(name, []byte("{}"), 0o644))
	}

	require.NoError(t, f.svc.Mirror(context.Background()))

	info, err := f.svc.Info()
	require.NoError(t, err)
	assert.Equal(t, 100, info.HistoryCount)
}
