// Package daily serves the daily sheet: loading a day, saving per-customer
// quantities, and copying the previous day's quantities forward.
package daily

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/dailysheet"
	"github.com/javedfarm/dairybook/internal/dateutil"
)

type Mirrorer interface {
	Mirror(ctx context.Context) error
}

type Handler struct {
	sheets    *dailysheet.Service
	customers *customer.Service
	mirror    Mirrorer
}

func NewHandler(sheets *dailysheet.Service, customers *customer.Service, mirror Mirrorer) *Handler {
	return &Handler{sheets: sheets, customers: customers, mirror: mirror}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{date}", h.sheet)
	r.Put("/{date}/customers/{customerID}", h.save)
	r.Post("/{date}/copy-previous", h.copyPrevious)
}

func (h *Handler) mirrorState(ctx context.Context) {
	if err := h.mirror.Mirror(ctx); err != nil {
		slog.Error("failed to mirror backup", "error", err)
	}
}

func (h *Handler) sheet(w http.ResponseWriter, r *http.Request) {
	date, err := dateutil.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	sheet, err := h.sheets.Load(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	customers, err := h.customers.ListActive(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSheetResponse(sheet, customers)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type saveRequest struct {
	Quantity float64 `json:"quantity"`
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	date, err := dateutil.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	customerID, err := uuid.Parse(chi.URLParam(r, "customerID"))
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.customers.Get(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Quantity < 0 {
		http.Error(w, "quantity must be non-negative", http.StatusBadRequest)
		return
	}

	if err := h.sheets.Save(r.Context(), date, c, req.Quantity); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.mirrorState(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) copyPrevious(w http.ResponseWriter, r *http.Request) {
	date, err := dateutil.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	result, err := h.sheets.CopyPreviousDay(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(result.Copied) > 0 {
		h.mirrorState(r.Context())
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toCopyResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
