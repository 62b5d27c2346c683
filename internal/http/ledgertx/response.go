package ledgertx

import (
	"time"

	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/ledger"
	"github.com/javedfarm/dairybook/internal/ledgercsv"
)

type transactionResponse struct {
	ID          uuid.UUID   `json:"id"`
	Type        ledger.Type `json:"type"`
	Category    string      `json:"category"`
	Amount      int64       `json:"amount"`
	Date        string      `json:"date"`
	Description string      `json:"description,omitempty"`
	CustomerID  *uuid.UUID  `json:"customer_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

func toResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Type:        tx.Type,
		Category:    tx.Category,
		Amount:      tx.Amount,
		Date:        dateutil.FormatDay(tx.Date),
		Description: tx.Description,
		CustomerID:  tx.CustomerID,
		CreatedAt:   tx.CreatedAt,
	}
}

func toResponseList(txs []*ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type skippedResponse struct {
	Line   int    `json:"line,omitempty"`
	Reason string `json:"reason"`
}

type importResponse struct {
	Created int               `json:"created"`
	Skipped []skippedResponse `json:"skipped,omitempty"`
}

func toImportResponse(result *ledgercsv.ImportResult) importResponse {
	resp := importResponse{Created: result.Created}

	for _, s := range result.Skipped {
		resp.Skipped = append(resp.Skipped, skippedResponse{Line: s.Line, Reason: s.Reason})
	}

	return resp
}
