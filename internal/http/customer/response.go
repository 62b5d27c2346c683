package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/customer"
)

type customerResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone,omitempty"`
	WhatsApp        string    `json:"whatsapp,omitempty"`
	Address         string    `json:"address,omitempty"`
	Rate            int64     `json:"rate"`
	DefaultQuantity float64   `json:"default_quantity"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

func toResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:              c.ID,
		Name:            c.Name,
		Phone:           c.Phone,
		WhatsApp:        c.WhatsApp,
		Address:         c.Address,
		Rate:            c.Rate,
		DefaultQuantity: c.DefaultQuantity,
		Active:          c.Active,
		CreatedAt:       c.CreatedAt,
	}
}

func toResponseList(customers []*customer.Customer) []customerResponse {
	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toResponse(c)
	}

	return resp
}
