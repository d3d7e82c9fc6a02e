package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stefifm/dashboard/internal/auth"
	"github.com/stefifm/dashboard/internal/form"
)

func TestService_Authenticate(t *testing.T) {
	session := &auth.Session{UserID: uuid.New(), Email: "user@nextmail.com", Token: "tok"}
	errDatabase := errors.New("database is down")

	type testCase struct {
		name      string
		signInErr error
		session   *auth.Session
		want      auth.SignInState
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "Success",
			session: session,
			want:    auth.SignInState{Session: session},
		},
		{
			name:      "BadCredentials",
			signInErr: &auth.Error{Kind: auth.KindCredentialsSignin},
			want:      auth.SignInState{Message: "Invalid credentials."},
		},
		{
			name:      "WrappedBadCredentials",
			signInErr: fmt.Errorf("provider: %w", &auth.Error{Kind: auth.KindCredentialsSignin}),
			want:      auth.SignInState{Message: "Invalid credentials."},
		},
		{
			name:      "OtherKind",
			signInErr: &auth.Error{Kind: auth.KindCallbackRouteError, Err: errDatabase},
			want:      auth.SignInState{Message: "Something went wrong."},
		},
		{
			name:      "AccessDenied",
			signInErr: &auth.Error{Kind: auth.KindAccessDenied},
			want:      auth.SignInState{Message: "Something went wrong."},
		},
		{
			name:      "Unclassified",
			signInErr: errDatabase,
			want:      auth.SignInState{},
			wantErr:   errDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			values := form.Values{"email": "user@nextmail.com", "password": "123456"}

			identity := auth.NewMockIdentity(ctrl)
			identity.EXPECT().
				SignIn(gomock.Any(), auth.ProviderCredentials, values).
				Return(tt.session, tt.signInErr)

			svc := auth.NewService(identity)
			got, err := svc.Authenticate(context.Background(), "", values)

			if tt.wantErr != nil {
				assert.Same(t, tt.wantErr, err)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProviders_SignIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	values := form.Values{"email": "a@b.c"}
	session := &auth.Session{Email: "a@b.c"}

	credentials := auth.NewMockProvider(ctrl)
	credentials.EXPECT().SignIn(gomock.Any(), values).Return(session, nil)

	providers := auth.Providers{auth.ProviderCredentials: credentials}

	got, err := providers.SignIn(context.Background(), auth.ProviderCredentials, values)
	require.NoError(t, err)
	assert.Same(t, session, got)

	_, err = providers.SignIn(context.Background(), "github", values)

	var authErr *auth.Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, auth.KindConfiguration, authErr.Kind)
}

func TestError_Error(t *testing.T) {
	assert.Equal(t, "auth: CredentialsSignin", (&auth.Error{Kind: auth.KindCredentialsSignin}).Error())

	inner := errors.New("boom")
	err := &auth.Error{Kind: auth.KindCallbackRouteError, Err: inner}
	assert.Equal(t, "auth: CallbackRouteError: boom", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	user := &auth.User{ID: uuid.New(), Name: "User", Email: "user@nextmail.com"}

	session, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)

	parsed, err := issuer.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, parsed.UserID)
	assert.Equal(t, user.Email, parsed.Email)
	assert.Equal(t, user.Name, parsed.Name)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	user := &auth.User{ID: uuid.New(), Email: "user@nextmail.com"}

	other, err := auth.NewTokenIssuer("other-secret", time.Hour).Issue(user)
	require.NoError(t, err)

	expired, err := auth.NewTokenIssuer("secret", -time.Minute).Issue(user)
	require.NoError(t, err)

	issuer := auth.NewTokenIssuer("secret", time.Hour)

	for name, token := range map[string]string{
		"WrongSecret": other.Token,
		"Expired":     expired.Token,
		"Garbage":     "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Parse(token)
			assert.Error(t, err)
		})
	}
}
