package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/entry"
	"github.com/javedfarm/dairybook/internal/ledger"
)

// Replacer swaps the entire stored data set atomically. Nothing is kept
// from the previous state.
//
//go:generate mockgen -source=service.go -destination=replacer_mock.go -package=backup
type Replacer interface {
	ReplaceAll(ctx context.Context, customers []*customer.Customer, entries []*entry.Entry, transactions []*ledger.Transaction) error
}

const (
	mirrorFilename = "backup.json"
	historyDir     = "history"
	historyLimit   = 100
)

type Service struct {
	customers    *customer.Service
	entries      *entry.Service
	transactions *ledger.Service
	replacer     Replacer
	dir          string
}

func NewService(customers *customer.Service, entries *entry.Service, transactions *ledger.Service, replacer Replacer, dir string) *Service {
	return &Service{
		customers:    customers,
		entries:      entries,
		transactions: transactions,
		replacer:     replacer,
		dir:          dir,
	}
}

// Export collects the entire data set into a snapshot.
func (s *Service) Export(ctx context.Context) (*Snapshot, error) {
	customers, err := s.customers.List(ctx, customer.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	entries, err := s.entries.List(ctx, entry.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	transactions, err := s.transactions.List(ctx, ledger.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	snapshot := &Snapshot{
		Version:      SnapshotVersion,
		ExportedAt:   time.Now().UTC(),
		Customers:    make([]CustomerRecord, 0, len(customers)),
		Entries:      make([]EntryRecord, 0, len(entries)),
		Transactions: make([]TransactionRecord, 0, len(transactions)),
	}

	for _, c := range customers {
		snapshot.Customers = append(snapshot.Customers, customerRecord(c))
	}

	for _, e := range entries {
		snapshot.Entries = append(snapshot.Entries, entryRecord(e))
	}

	for _, tx := range transactions {
		snapshot.Transactions = append(snapshot.Transactions, transactionRecord(tx))
	}

	return snapshot, nil
}

// ExportJSON writes the snapshot as indented JSON.
func (s *Service) ExportJSON(ctx context.Context, w io.Writer) error {
	snapshot, err := s.Export(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	return nil
}

// Import replaces all stored data with the snapshot's content. The
// snapshot is validated in full first; on any validation error the stored
// data is left untouched.
func (s *Service) Import(ctx context.Context, snapshot *Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	customers, entries, transactions := snapshot.decode()

	if err := s.replacer.ReplaceAll(ctx, customers, entries, transactions); err != nil {
		return fmt.Errorf("replacing data: %w", err)
	}

	return nil
}

// ImportJSON decodes a snapshot from r and imports it.
func (s *Service) ImportJSON(ctx context.Context, r io.Reader) error {
	var snapshot Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	return s.Import(ctx, &snapshot)
}

// Mirror writes the current snapshot to the backup directory: the mirror
// file always holds the latest state, and a timestamped copy lands in the
// history directory, pruned to the most recent hundred.
func (s *Service) Mirror(ctx context.Context) error {
	snapshot, err := s.Export(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(s.dir, historyDir), 0o755); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, mirrorFilename), data, 0o644); err != nil {
		return fmt.Errorf("writing mirror: %w", err)
	}

	name := fmt.Sprintf("backup-%s.json", snapshot.ExportedAt.Format("20060102-150405.000"))
	if err := os.WriteFile(filepath.Join(s.dir, historyDir, name), data, 0o644); err != nil {
		return fmt.Errorf("writing history copy: %w", err)
	}

	return s.pruneHistory()
}

func (s *Service) pruneHistory() error {
	dir := filepath.Join(s.dir, historyDir)

	names, err := historyFiles(dir)
	if err != nil {
		return err
	}

	if len(names) <= historyLimit {
		return nil
	}

	// Timestamped names sort oldest first.
	for _, name := range names[:len(names)-historyLimit] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("pruning history: %w", err)
		}
	}

	return nil
}

func historyFiles(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading history directory: %w", err)
	}

	names := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != ".json" {
			continue
		}

		names = append(names, de.Name())
	}

	sort.Strings(names)

	return names, nil
}

// Info describes the state of the mirror backup on disk.
type Info struct {
	MirrorExists bool
	MirroredAt   time.Time
	HistoryCount int
}

// Info reports whether a mirror exists, when it was written, and how many
// history copies are kept.
func (s *Service) Info() (Info, error) {
	var info Info

	if stat, err := os.Stat(filepath.Join(s.dir, mirrorFilename)); err == nil {
		info.MirrorExists = true
		info.MirroredAt = stat.ModTime()
	} else if !os.IsNotExist(err) {
		return Info{}, fmt.Errorf("checking mirror: %w", err)
	}

	names, err := historyFiles(filepath.Join(s.dir, historyDir))
	if err != nil {
		return Info{}, err
	}

	info.HistoryCount = len(names)

	return info, nil
}
