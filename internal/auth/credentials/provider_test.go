package credentials_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/stefifm/dashboard/internal/auth"
	"github.com/stefifm/dashboard/internal/auth/credentials"
	"github.com/stefifm/dashboard/internal/form"
)

func TestProvider_SignIn(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &auth.User{
		ID:           uuid.New(),
		Name:         "User",
		Email:        "user@nextmail.com",
		PasswordHash: string(hash),
	}

	type testCase struct {
		name      string
		values    form.Values
		setupMock func(m *credentials.MockUserStore)
		wantKind  auth.Kind
	}

	tests := []testCase{
		{
			name:   "Success",
			values: form.Values{"email": "user@nextmail.com", "password": "123456"},
			setupMock: func(m *credentials.MockUserStore) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "user@nextmail.com").Return(user, nil)
			},
		},
		{
			name:     "InvalidEmail",
			values:   form.Values{"email": "not-an-email", "password": "123456"},
			wantKind: auth.KindCredentialsSignin,
		},
		{
			name:     "ShortPassword",
			values:   form.Values{"email": "user@nextmail.com", "password": "123"},
			wantKind: auth.KindCredentialsSignin,
		},
		{
			name:   "UnknownUser",
			values: form.Values{"email": "nobody@nextmail.com", "password": "123456"},
			setupMock: func(m *credentials.MockUserStore) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "nobody@nextmail.com").Return(nil, auth.ErrUserNotFound)
			},
			wantKind: auth.KindCredentialsSignin,
		},
		{
			name:   "WrongPassword",
			values: form.Values{"email": "user@nextmail.com", "password": "654321"},
			setupMock: func(m *credentials.MockUserStore) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "user@nextmail.com").Return(user, nil)
			},
			wantKind: auth.KindCredentialsSignin,
		},
		{
			name:   "StoreError",
			values: form.Values{"email": "user@nextmail.com", "password": "123456"},
			setupMock: func(m *credentials.MockUserStore) {
				m.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
			wantKind: auth.KindCallbackRouteError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			users := credentials.NewMockUserStore(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(users)
			}

			p := credentials.New(users, auth.NewTokenIssuer("secret", time.Hour))
			got, err := p.SignIn(context.Background(), tt.values)

			if tt.wantKind != "" {
				var authErr *auth.Error
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, tt.wantKind, authErr.Kind)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, got.UserID)
			assert.NotEmpty(t, got.Token)
		})
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := credentials.HashPassword("123456")
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("123456")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("1234567")))
}
