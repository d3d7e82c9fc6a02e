package invoice

import (
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/stefifm/dashboard/internal/form"
)

// fields is the validated shape of the invoice form. The identifier and date are never
// taken from form input.
type fields struct {
	CustomerID string `form:"customerId" validate:"required"`
	Amount     string `form:"amount" validate:"required,decimal,positive,min_cents,max_cents"`
	Status     string `form:"status" validate:"required,oneof=pending paid"`
}

var messages = form.Messages{
	"customerId": {
		"required": "Please select a customer",
	},
	"amount": {
		"required":  "Please enter an amount",
		"decimal":   "Amount must be a number",
		"positive":  "Amount must be greater than 0",
		"min_cents": "Amount must be at least 0.01",
		"max_cents": "Amount is too large",
	},
	"status": {
		"required": "Please select a status",
		"oneof":    "Please select a valid status",
	},
}

// params is the typed result of a successful validation.
type params struct {
	CustomerID string
	Amount     int64
	Status     Status
}

func newSchema() *form.Schema {
	s := form.NewSchema()
	s.MustRegister("min_cents", centsAtLeast(decimal.NewFromInt(1)))
	// invoices.amount is a 32-bit integer column.
	s.MustRegister("max_cents", centsAtMost(decimal.NewFromInt(math.MaxInt32)))

	return s
}

// parse validates all invoice fields together and converts the amount to cents.
func parse(s *form.Schema, values form.Values) (params, form.FieldErrors) {
	f := fields{
		CustomerID: values["customerId"],
		Amount:     values["amount"],
		Status:     values["status"],
	}

	if errs := s.Validate(f, messages); errs != nil {
		return params{}, errs
	}

	// Validated above; cannot fail.
	amount, _ := form.Decimal(f.Amount)

	return params{
		CustomerID: f.CustomerID,
		Amount:     ToCents(amount),
		Status:     Status(f.Status),
	}, nil
}

var hundred = decimal.NewFromInt(100)

// ToCents converts a currency amount to cents, rounding half away from zero.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

func centsAtMost(limit decimal.Decimal) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := form.Decimal(fl.Field().String())
		if err != nil {
			return false
		}

		return d.Mul(hundred).Round(0).LessThanOrEqual(limit)
	}
}

func centsAtLeast(limit decimal.Decimal) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := form.Decimal(fl.Field().String())
		if err != nil {
			return false
		}

		return d.Mul(hundred).Round(0).GreaterThanOrEqual(limit)
	}
}
