package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stefifm/dashboard/internal/money"
)

const dbTimeout = 5 * time.Second

// FormatAmount formats cents as a dollar amount with grouping, e.g. $1,250.00.
func FormatAmount(cents int64) string {
	return money.Format(cents)
}

// AmountInput renders cents the way a user would type them into the amount field.
func AmountInput(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
