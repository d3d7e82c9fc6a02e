package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DefaultMessage is used for failures that have no entry in Messages.
const DefaultMessage = "Invalid input."

// Messages maps field name to validation tag to the message shown for that failure.
type Messages map[string]map[string]string

// Schema validates decoded form structs. Field names in errors come from the `form` tag.
type Schema struct {
	validate *validator.Validate
}

// NewSchema returns a Schema with the decimal and positive tags registered.
func NewSchema() *Schema {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	s := &Schema{validate: v}
	s.MustRegister("decimal", isDecimal)
	s.MustRegister("positive", isPositive)

	return s
}

// Register adds a custom validation tag.
func (s *Schema) Register(tag string, fn validator.Func) error {
	if err := s.validate.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("registering %q: %w", tag, err)
	}

	return nil
}

// MustRegister is like Register but panics if the tag cannot be registered.
func (s *Schema) MustRegister(tag string, fn validator.Func) {
	if err := s.Register(tag, fn); err != nil {
		panic(fmt.Sprintf("form: %v", err))
	}
}

// Validate checks every field of dst and returns the failures keyed by field, or nil.
// A non-struct dst is a programming error and panics.
func (s *Schema) Validate(dst any, messages Messages) FieldErrors {
	err := s.validate.Struct(dst)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		panic(fmt.Sprintf("form: validating %T: %v", dst, err))
	}

	fieldErrs := make(FieldErrors, len(validationErrs))

	for _, fe := range validationErrs {
		msg, ok := messages[fe.Field()][fe.Tag()]
		if !ok {
			msg = DefaultMessage
		}

		fieldErrs.Add(fe.Field(), msg)
	}

	return fieldErrs
}

// Bounds on submitted numbers, checked before anything rescales them.
const (
	maxDecimalLen      = 32
	maxDecimalExponent = 32
)

var (
	ErrNumberTooLong    = errors.New("number is too long")
	ErrNumberOutOfRange = errors.New("number exponent is out of range")
)

// Decimal coerces a submitted string into a number, ignoring surrounding whitespace.
func Decimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if len(s) > maxDecimalLen {
		return decimal.Decimal{}, ErrNumberTooLong
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if exp := d.Exponent(); exp > maxDecimalExponent || exp < -maxDecimalExponent {
		return decimal.Decimal{}, ErrNumberOutOfRange
	}

	return d, nil
}

func isDecimal(fl validator.FieldLevel) bool {
	_, err := Decimal(fl.Field().String())
	return err == nil
}

func isPositive(fl validator.FieldLevel) bool {
	d, err := Decimal(fl.Field().String())
	if err != nil {
		return false
	}

	return d.IsPositive()
}
