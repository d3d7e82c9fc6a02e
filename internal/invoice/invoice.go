package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("invoice not found")

// Status represents whether an invoice has been settled.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Invoice represents a billed amount owed by a customer.
type Invoice struct {
	ID         uuid.UUID
	CustomerID string
	Amount     int64 // Amount in cents
	Status     Status
	Date       time.Time // Calendar date, set once on creation
}

// Customer is the owner of invoices, listed for the invoice form.
type Customer struct {
	ID       uuid.UUID
	Name     string
	Email    string
	ImageURL string
}

// ListItem is an invoice joined with its customer for the invoice list view.
type ListItem struct {
	Invoice
	CustomerName  string
	CustomerEmail string
}
