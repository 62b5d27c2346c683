package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/javedfarm/dairybook/internal/dashboard"
	"github.com/javedfarm/dairybook/internal/dateutil"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.stats)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context(), time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(stats)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type dayTotalResponse struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
	Amount   int64   `json:"amount"`
}

type statsResponse struct {
	ActiveCustomers    int                `json:"active_customers"`
	TodayQuantity      float64            `json:"today_quantity"`
	TodayAmount        int64              `json:"today_amount"`
	MonthQuantity      float64            `json:"month_quantity"`
	MonthRevenue       int64              `json:"month_revenue"`
	OutstandingBalance int64              `json:"outstanding_balance"`
	Last7Days          []dayTotalResponse `json:"last_7_days"`
}

func toResponse(stats *dashboard.Stats) statsResponse {
	resp := statsResponse{
		ActiveCustomers:    stats.ActiveCustomers,
		TodayQuantity:      stats.TodayQuantity,
		TodayAmount:        stats.TodayAmount,
		MonthQuantity:      stats.MonthQuantity,
		MonthRevenue:       stats.MonthRevenue,
		OutstandingBalance: stats.OutstandingBalance,
		Last7Days:          make([]dayTotalResponse, len(stats.Last7Days)),
	}

	for i, d := range stats.Last7Days {
		resp.Last7Days[i] = dayTotalResponse{
			Date:     dateutil.FormatDay(d.Date),
			Quantity: d.Quantity,
			Amount:   d.Amount,
		}
	}

	return resp
}
