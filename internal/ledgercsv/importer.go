package ledgercsv

import (
	"context"
	"fmt"
	"io"

	"github.com/javedfarm/dairybook/internal/encoding"
	"github.com/javedfarm/dairybook/internal/ledger"
)

// Importer parses uploaded ledger CSVs and records their rows as
// transactions.
type Importer struct {
	transactions *ledger.Service
}

func NewImporter(transactions *ledger.Service) *Importer {
	return &Importer{transactions: transactions}
}

// ImportResult reports what an import did.
type ImportResult struct {
	Created int
	Skipped []Skipped
}

// Import decodes, parses, and stores the CSV's rows. Rows are created
// independently; a row the store rejects is reported as skipped, not
// fatal.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	decoded, err := encoding.UTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding upload: %w", err)
	}

	parsed, err := Parse(decoded)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Skipped: parsed.Skipped}

	for _, row := range parsed.Rows {
		_, err := i.transactions.Create(ctx, ledger.CreateParams{
			Type:        row.Type,
			Category:    row.Category,
			Amount:      row.Amount,
			Date:        row.Date,
			Description: row.Description,
		})
		if err != nil {
			result.Skipped = append(result.Skipped, Skipped{Reason: err.Error()})
			continue
		}

		result.Created++
	}

	return result, nil
}
