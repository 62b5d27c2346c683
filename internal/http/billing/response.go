package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/billing"
	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/entry"
)

type billEntryResponse struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
	Rate     int64   `json:"rate"`
	Amount   int64   `json:"amount"`
}

type billResponse struct {
	CustomerID    uuid.UUID           `json:"customer_id"`
	CustomerName  string              `json:"customer_name"`
	Phone         string              `json:"phone,omitempty"`
	Entries       []billEntryResponse `json:"entries"`
	TotalQuantity float64             `json:"total_quantity"`
	TotalAmount   int64               `json:"total_amount"`
	PaidAmount    int64               `json:"paid_amount"`
	Balance       int64               `json:"balance"`
	Status        billing.Status      `json:"status"`
}

type summaryResponse struct {
	Month         string         `json:"month"`
	Bills         []billResponse `json:"bills"`
	TotalQuantity float64        `json:"total_quantity"`
	TotalAmount   int64          `json:"total_amount"`
	TotalPaid     int64          `json:"total_paid"`
	TotalBalance  int64          `json:"total_balance"`
}

type invoiceResponse struct {
	Text         string `json:"text"`
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
}

func toBillEntries(entries []*entry.Entry) []billEntryResponse {
	resp := make([]billEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = billEntryResponse{
			Date:     dateutil.FormatDay(e.Date),
			Quantity: e.Quantity,
			Rate:     e.Rate,
			Amount:   e.Amount,
		}
	}

	return resp
}

func toBillResponse(b *billing.Bill) billResponse {
	return billResponse{
		CustomerID:    b.Customer.ID,
		CustomerName:  b.Customer.Name,
		Phone:         b.Customer.Phone,
		Entries:       toBillEntries(b.Entries),
		TotalQuantity: b.TotalQuantity,
		TotalAmount:   b.TotalAmount,
		PaidAmount:    b.PaidAmount,
		Balance:       b.Balance,
		Status:        b.Status,
	}
}

func toSummaryResponse(summary *billing.MonthSummary, month time.Time) summaryResponse {
	resp := summaryResponse{
		Month:         dateutil.FormatMonth(month),
		Bills:         make([]billResponse, len(summary.Bills)),
		TotalQuantity: summary.TotalQuantity,
		TotalAmount:   summary.TotalAmount,
		TotalPaid:     summary.TotalPaid,
		TotalBalance:  summary.TotalBalance,
	}

	for i, b := range summary.Bills {
		resp.Bills[i] = toBillResponse(b)
	}

	return resp
}
