package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stefifm/dashboard/internal/form"
)

// ProviderCredentials is the email and password provider.
const ProviderCredentials = "credentials"

const (
	msgInvalidCredentials = "Invalid credentials."
	msgSomethingWentWrong = "Something went wrong."
)

var ErrUserNotFound = errors.New("user not found")

// Kind classifies why a sign-in was rejected.
type Kind string

const (
	KindCredentialsSignin  Kind = "CredentialsSignin"
	KindCallbackRouteError Kind = "CallbackRouteError"
	KindConfiguration      Kind = "Configuration"
	KindAccessDenied       Kind = "AccessDenied"
)

// Error is a classified identity failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "auth: " + string(e.Kind)
	}

	return fmt.Sprintf("auth: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// User is an account allowed to sign in to the dashboard.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
}

// Session is issued on a successful sign-in.
type Session struct {
	UserID    uuid.UUID
	Email     string
	Name      string
	Token     string
	ExpiresAt time.Time
}

// Provider verifies one kind of credential.
type Provider interface {
	SignIn(ctx context.Context, values form.Values) (*Session, error)
}

//go:generate mockgen -source=auth.go -destination=identity_mock.go -package=auth
type Identity interface {
	SignIn(ctx context.Context, provider string, values form.Values) (*Session, error)
}

// Providers dispatches sign-in requests by provider name.
type Providers map[string]Provider

func (p Providers) SignIn(ctx context.Context, provider string, values form.Values) (*Session, error) {
	prov, ok := p[provider]
	if !ok {
		return nil, &Error{Kind: KindConfiguration, Err: fmt.Errorf("unknown provider %q", provider)}
	}

	return prov.SignIn(ctx, values)
}

// SignInState is the outcome shown on the login form. Message is empty on success.
type SignInState struct {
	Session *Session `json:"-"`
	Message string   `json:"message,omitempty"`
}

type Service struct {
	identity Identity
}

func NewService(identity Identity) *Service {
	return &Service{identity: identity}
}

// Authenticate signs in with the credentials provider. Classified failures become a
// user-facing message; any other error is returned unchanged.
func (s *Service) Authenticate(ctx context.Context, prev string, values form.Values) (SignInState, error) {
	session, err := s.identity.SignIn(ctx, ProviderCredentials, values)
	if err == nil {
		return SignInState{Session: session}, nil
	}

	var authErr *Error
	if !errors.As(err, &authErr) {
		return SignInState{}, err
	}

	switch authErr.Kind {
	case KindCredentialsSignin:
		return SignInState{Message: msgInvalidCredentials}, nil
	default:
		return SignInState{Message: msgSomethingWentWrong}, nil
	}
}
