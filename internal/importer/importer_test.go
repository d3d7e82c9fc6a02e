package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stefifm/dashboard/internal/form"
	"github.com/stefifm/dashboard/internal/importer"
	"github.com/stefifm/dashboard/internal/invoice"
)

func TestParser_Parse(t *testing.T) {
	type testCase struct {
		name         string
		input        string
		wantRows     []importer.Row
		wantRejected []importer.RowError
		wantErr      error
	}

	tests := []testCase{
		{
			name: "Comma",
			input: "name,email,image_url\n" +
				"Evil Rabbit,Evil@Rabbit.com,/customers/evil-rabbit.png\n",
			wantRows: []importer.Row{{
				Line:     2,
				Customer: invoice.Customer{Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
			}},
		},
		{
			name: "SemicolonWithTitleRowsAndReorderedColumns",
			input: "Customer export;;\n" +
				";;\n" +
				"Email;Name\n" +
				"amy@burns.com;Amy Burns\n" +
				";\n" +
				"balazs@orban.com; Balazs Orban \n",
			wantRows: []importer.Row{
				{Line: 4, Customer: invoice.Customer{Name: "Amy Burns", Email: "amy@burns.com"}},
				{Line: 6, Customer: invoice.Customer{Name: "Balazs Orban", Email: "balazs@orban.com"}},
			},
		},
		{
			name: "InvalidRows",
			input: "name,email\n" +
				",lee@robinson.com\n" +
				"Michael Novotny,not-an-email\n" +
				"Lee Robinson,lee@robinson.com\n",
			wantRows: []importer.Row{
				{Line: 4, Customer: invoice.Customer{Name: "Lee Robinson", Email: "lee@robinson.com"}},
			},
			wantRejected: []importer.RowError{
				{Line: 2, Errors: form.FieldErrors{"name": {"Please enter a name"}}},
				{Line: 3, Errors: form.FieldErrors{"email": {"Please enter a valid email"}}},
			},
		},
		{
			name:    "NoHeader",
			input:   "Evil Rabbit,evil@rabbit.com\n",
			wantErr: importer.ErrNoHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, rejected, err := importer.NewParser().Parse(strings.NewReader(tt.input))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRows, rows)
			assert.Equal(t, tt.wantRejected, rejected)
		})
	}
}

func TestRowError_Error(t *testing.T) {
	err := importer.RowError{Line: 7, Errors: form.FieldErrors{
		"email": {"Please enter an email"},
		"name":  {"Please enter a name"},
	}}

	assert.Equal(t, "line 7: name: Please enter a name; email: Please enter an email", err.Error())
}

func TestService_Import(t *testing.T) {
	input := "name,email\n" +
		"Evil Rabbit,evil@rabbit.com\n" +
		"Bad Row,\n" +
		"Amy Burns,amy@burns.com\n"

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := importer.NewMockCustomerStore(ctrl)

		store.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *invoice.Customer) error {
				c.ID = uuid.New()
				return nil
			}).Times(2)

		report, err := importer.NewService(store).Import(context.Background(), strings.NewReader(input))
		require.NoError(t, err)

		require.Len(t, report.Created, 2)
		assert.Equal(t, "Evil Rabbit", report.Created[0].Name)
		assert.NotEqual(t, uuid.Nil, report.Created[0].ID)
		assert.Equal(t, "Amy Burns", report.Created[1].Name)

		require.Len(t, report.Rejected, 1)
		assert.Equal(t, 3, report.Rejected[0].Line)
	})

	t.Run("StoreError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := importer.NewMockCustomerStore(ctrl)

		gomock.InOrder(
			store.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(nil),
			store.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(errors.New("unique violation")),
		)

		report, err := importer.NewService(store).Import(context.Background(), strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 4")
		assert.Len(t, report.Created, 1)
	})
}
