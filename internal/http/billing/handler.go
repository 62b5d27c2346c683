// Package billing serves monthly bills, the per-customer invoice message,
// and the XLSX month report.
package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/billing"
	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/dateutil"
)

type Handler struct {
	svc      *billing.Service
	farmName string
}

func NewHandler(svc *billing.Service, farmName string) *Handler {
	return &Handler{svc: svc, farmName: farmName}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{month}", h.monthlyBills)
	r.Get("/{month}/report.xlsx", h.report)
	r.Get("/{month}/customers/{customerID}/invoice", h.invoice)
}

func (h *Handler) monthlyBills(w http.ResponseWriter, r *http.Request) {
	month, err := dateutil.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.MonthlyBills(r.Context(), month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSummaryResponse(summary, month)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	month, err := dateutil.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.MonthlyBills(r.Context(), month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", billing.InvoiceFilename(month)))

	if err := billing.WriteReport(w, summary, month); err != nil {
		slog.Error("failed to write report", "error", err)
	}
}

func (h *Handler) invoice(w http.ResponseWriter, r *http.Request) {
	month, err := dateutil.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	customerID, err := uuid.Parse(chi.URLParam(r, "customerID"))
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	bill, err := h.svc.CustomerBill(r.Context(), customerID, month)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	text := billing.InvoiceText(h.farmName, bill, month)

	phone := bill.Customer.WhatsApp
	if phone == "" {
		phone = bill.Customer.Phone
	}

	resp := invoiceResponse{
		Text:         text,
		WhatsAppLink: billing.WhatsAppLink(phone, text),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
