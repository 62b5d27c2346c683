package daily

import (
	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/dailysheet"
	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/entry"
)

type sheetLineResponse struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Rate       int64     `json:"rate"`
	Quantity   float64   `json:"quantity"`
	Amount     int64     `json:"amount"`
	Saved      bool      `json:"saved"`
}

type sheetResponse struct {
	Date            string              `json:"date"`
	Lines           []sheetLineResponse `json:"lines"`
	TotalQuantity   float64             `json:"total_quantity"`
	ProjectedAmount int64               `json:"projected_amount"`
}

// toSheetResponse joins sheet lines with customer details, keeping the
// store's name ordering.
func toSheetResponse(sheet dailysheet.Sheet, customers []*customer.Customer) sheetResponse {
	resp := sheetResponse{
		Date:  dateutil.FormatDay(sheet.Date),
		Lines: make([]sheetLineResponse, 0, len(customers)),
	}

	rates := make(map[uuid.UUID]int64, len(customers))

	for _, c := range customers {
		line, ok := sheet.Line(c.ID)
		if !ok {
			continue
		}

		rates[c.ID] = c.Rate

		resp.Lines = append(resp.Lines, sheetLineResponse{
			CustomerID: c.ID,
			Name:       c.Name,
			Rate:       c.Rate,
			Quantity:   line.Quantity,
			Amount:     entry.Amount(line.Quantity, c.Rate),
			Saved:      line.Saved,
		})
	}

	resp.TotalQuantity = sheet.TotalQuantity()
	resp.ProjectedAmount = sheet.ProjectedAmount(rates)

	return resp
}

type copyFailureResponse struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Error      string    `json:"error"`
}

type copyResponse struct {
	Copied   []uuid.UUID           `json:"copied"`
	Failures []copyFailureResponse `json:"failures,omitempty"`
}

func toCopyResponse(result dailysheet.CopyResult) copyResponse {
	resp := copyResponse{Copied: result.Copied}
	if resp.Copied == nil {
		resp.Copied = []uuid.UUID{}
	}

	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, copyFailureResponse{
			CustomerID: f.CustomerID,
			Error:      f.Err.Error(),
		})
	}

	return resp
}
