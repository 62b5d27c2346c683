// Package ledgertx serves the cash ledger: recording transactions,
// filtered listing, and CSV import/export.
package ledgertx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/ledger"
	"github.com/javedfarm/dairybook/internal/ledgercsv"
)

type Mirrorer interface {
	Mirror(ctx context.Context) error
}

type Handler struct {
	svc      *ledger.Service
	importer *ledgercsv.Importer
	mirror   Mirrorer
}

func NewHandler(svc *ledger.Service, importer *ledgercsv.Importer, mirror Mirrorer) *Handler {
	return &Handler{svc: svc, importer: importer, mirror: mirror}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/categories", h.categories)
	r.Get("/export.csv", h.exportCSV)
	r.Post("/import", h.importCSV)
}

func (h *Handler) mirrorState(ctx context.Context) {
	if err := h.mirror.Mirror(ctx); err != nil {
		slog.Error("failed to mirror backup", "error", err)
	}
}

type createTransactionRequest struct {
	Type        ledger.Type `json:"type"`
	Category    string      `json:"category"`
	Amount      int64       `json:"amount"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	CustomerID  *uuid.UUID  `json:"customer_id,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := dateutil.ParseDay(req.Date)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), ledger.CreateParams{
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
		CustomerID:  req.CustomerID,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mirrorState(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func filterFromQuery(r *http.Request) (ledger.ListFilter, error) {
	filter := ledger.ListFilter{}
	q := r.URL.Query()

	if s := q.Get("type"); s != "" {
		t := ledger.Type(s)
		if t != ledger.TypeCredit && t != ledger.TypeDebit {
			return filter, fmt.Errorf("invalid type %q", s)
		}

		filter.Type = new(t)
	}

	if s := q.Get("customer_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return filter, fmt.Errorf("invalid customer_id")
		}

		filter.CustomerID = new(id)
	}

	if s := q.Get("month"); s != "" {
		month, err := dateutil.ParseMonth(s)
		if err != nil {
			return filter, fmt.Errorf("invalid month")
		}

		start, end := dateutil.MonthInterval(month)
		filter.StartDate = new(start)
		filter.EndDate = new(end)

		return filter, nil
	}

	if s := q.Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := q.Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	return filter, nil
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(ledger.Categories()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.csv"`)

	if err := ledgercsv.Export(w, txs); err != nil {
		slog.Error("failed to write csv export", "error", err)
	}
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	result, err := h.importer.Import(r.Context(), r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if result.Created > 0 {
		h.mirrorState(r.Context())
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toImportResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
