package form_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefifm/dashboard/internal/form"
)

type sample struct {
	Name  string `form:"name" validate:"required"`
	Price string `form:"price" validate:"required,decimal,positive"`
	Kind  string `form:"kind" validate:"required,oneof=a b"`
}

var sampleMessages = form.Messages{
	"name":  {"required": "name is required"},
	"price": {"required": "price is required", "decimal": "price must be a number", "positive": "price must be positive"},
	"kind":  {"required": "kind is required"},
}

func TestSchema_Validate(t *testing.T) {
	type testCase struct {
		name  string
		input sample
		want  form.FieldErrors
	}

	tests := []testCase{
		{
			name:  "Valid",
			input: sample{Name: "x", Price: "12.50", Kind: "a"},
			want:  nil,
		},
		{
			name:  "AllMissing",
			input: sample{},
			want: form.FieldErrors{
				"name":  {"name is required"},
				"price": {"price is required"},
				"kind":  {"kind is required"},
			},
		},
		{
			name:  "NotANumber",
			input: sample{Name: "x", Price: "abc", Kind: "b"},
			want:  form.FieldErrors{"price": {"price must be a number"}},
		},
		{
			name:  "Zero",
			input: sample{Name: "x", Price: "0", Kind: "b"},
			want:  form.FieldErrors{"price": {"price must be positive"}},
		},
		{
			name:  "Negative",
			input: sample{Name: "x", Price: "-3", Kind: "b"},
			want:  form.FieldErrors{"price": {"price must be positive"}},
		},
		{
			name:  "PaddedNumber",
			input: sample{Name: "x", Price: " 7 ", Kind: "a"},
			want:  nil,
		},
		{
			name:  "HugeExponent",
			input: sample{Name: "x", Price: "1e20000000", Kind: "a"},
			want:  form.FieldErrors{"price": {"price must be a number"}},
		},
		{
			name:  "HugeNegativeExponent",
			input: sample{Name: "x", Price: "1e-20000000", Kind: "a"},
			want:  form.FieldErrors{"price": {"price must be a number"}},
		},
		{
			name:  "TooLong",
			input: sample{Name: "x", Price: "1" + strings.Repeat("0", 40), Kind: "a"},
			want:  form.FieldErrors{"price": {"price must be a number"}},
		},
		{
			name:  "UnmappedTagFallsBack",
			input: sample{Name: "x", Price: "1", Kind: "c"},
			want:  form.FieldErrors{"kind": {form.DefaultMessage}},
		},
	}

	schema := form.NewSchema()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schema.Validate(tt.input, sampleMessages)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchema_Register(t *testing.T) {
	type even struct {
		N string `form:"n" validate:"even"`
	}

	schema := form.NewSchema()
	require.NoError(t, schema.Register("even", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String())%2 == 0
	}))

	assert.Nil(t, schema.Validate(even{N: "ab"}, nil))
	assert.Equal(t, form.FieldErrors{"n": {form.DefaultMessage}}, schema.Validate(even{N: "abc"}, nil))

	assert.Error(t, schema.Register("", func(validator.FieldLevel) bool { return true }))
	assert.Panics(t, func() {
		schema.MustRegister("", func(validator.FieldLevel) bool { return true })
	})
}

func TestDecimal(t *testing.T) {
	d, err := form.Decimal(" 12.5 ")
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())

	d, err = form.Decimal("1e12")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000", d.String())

	_, err = form.Decimal("twelve")
	assert.Error(t, err)

	_, err = form.Decimal("1e20000000")
	assert.ErrorIs(t, err, form.ErrNumberOutOfRange)

	_, err = form.Decimal("1e-33")
	assert.ErrorIs(t, err, form.ErrNumberOutOfRange)

	_, err = form.Decimal(strings.Repeat("9", 33))
	assert.ErrorIs(t, err, form.ErrNumberTooLong)
}

func TestFromRequest(t *testing.T) {
	body := url.Values{
		"customerId": {"c1"},
		"status":     {"pending", "paid"},
		"amount":     {"10"},
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got, err := form.FromRequest(req)
	require.NoError(t, err)

	assert.Equal(t, form.Values{"customerId": "c1", "status": "paid", "amount": "10"}, got)
}

func TestFromRequest_IgnoresQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/?amount=99", strings.NewReader("amount=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got, err := form.FromRequest(req)
	require.NoError(t, err)

	assert.Equal(t, form.Values{"amount": "1"}, got)
}

func TestFieldErrors_Add(t *testing.T) {
	errs := form.FieldErrors{}
	errs.Add("amount", "first")
	errs.Add("amount", "second")

	assert.Equal(t, []string{"first", "second"}, errs["amount"])
}
