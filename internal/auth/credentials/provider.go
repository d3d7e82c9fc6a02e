// Package credentials signs users in with an email address and password.
package credentials

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/stefifm/dashboard/internal/auth"
	"github.com/stefifm/dashboard/internal/form"
)

//go:generate mockgen -source=provider.go -destination=users_mock.go -package=credentials
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*auth.User, error)
}

type input struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

type Provider struct {
	users  UserStore
	tokens *auth.TokenIssuer
	schema *form.Schema
}

func New(users UserStore, tokens *auth.TokenIssuer) *Provider {
	return &Provider{
		users:  users,
		tokens: tokens,
		schema: form.NewSchema(),
	}
}

func (p *Provider) SignIn(ctx context.Context, values form.Values) (*auth.Session, error) {
	in := input{Email: values["email"], Password: values["password"]}
	if errs := p.schema.Validate(in, nil); errs != nil {
		return nil, &auth.Error{Kind: auth.KindCredentialsSignin}
	}

	user, err := p.users.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, &auth.Error{Kind: auth.KindCredentialsSignin}
		}

		return nil, &auth.Error{Kind: auth.KindCallbackRouteError, Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, &auth.Error{Kind: auth.KindCredentialsSignin}
	}

	session, err := p.tokens.Issue(user)
	if err != nil {
		return nil, &auth.Error{Kind: auth.KindCallbackRouteError, Err: err}
	}

	return session, nil
}

// HashPassword returns the bcrypt hash stored for a user's password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
