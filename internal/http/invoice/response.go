package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/stefifm/dashboard/internal/invoice"
	"github.com/stefifm/dashboard/internal/money"
)

type invoiceResponse struct {
	ID              uuid.UUID      `json:"id"`
	CustomerID      string         `json:"customer_id"`
	Amount          int64          `json:"amount"`
	AmountFormatted string         `json:"amount_formatted"`
	Status          invoice.Status `json:"status"`
	Date            string         `json:"date"`
	CustomerName    string         `json:"customer_name,omitempty"`
	CustomerEmail   string         `json:"customer_email,omitempty"`
}

type customerResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	ImageURL string    `json:"image_url,omitempty"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:              inv.ID,
		CustomerID:      inv.CustomerID,
		Amount:          inv.Amount,
		AmountFormatted: money.Format(inv.Amount),
		Status:          inv.Status,
		Date:            inv.Date.Format(time.DateOnly),
	}
}

func toListResponse(items []*invoice.ListItem) []invoiceResponse {
	resp := make([]invoiceResponse, len(items))
	for i, item := range items {
		resp[i] = toResponse(&item.Invoice)
		resp[i].CustomerName = item.CustomerName
		resp[i].CustomerEmail = item.CustomerEmail
	}

	return resp
}

func toCustomerResponseList(customers []*invoice.Customer) []customerResponse {
	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = customerResponse{
			ID:       c.ID,
			Name:     c.Name,
			Email:    c.Email,
			ImageURL: c.ImageURL,
		}
	}

	return resp
}
