// Package services contains application services for the todo client.
// This file defines the authentication service: login, register, logout and
// the current identity, on top of the remote API and the session manager.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophtodo/internal/client/client"
	"github.com/dmitrijs2005/gophtodo/internal/client/forms"
	"github.com/dmitrijs2005/gophtodo/internal/client/session"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
)

var ErrNoToken = errors.New("no token received")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: validate the form, authenticate, and store the issued token.
//   - Register: validate the form and create the account. When the server
//     also issues a token it is stored and the user is signed in.
//   - Logout: drop the stored token.
//   - CurrentUser: identity decoded from the stored token.
//
// Validation failures are returned before any request is made.
type AuthService interface {
	Login(ctx context.Context, form forms.LoginForm) (session.CurrentUser, error)
	Register(ctx context.Context, form forms.RegisterForm) (signedIn bool, err error)
	Logout(ctx context.Context) error
	CurrentUser() (session.CurrentUser, error)
}

// authService is the concrete AuthService backed by a remote Client and the
// process session.
type authService struct {
	client  client.Client
	session *session.Manager
	logger  logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// session.
func NewAuthService(c client.Client, s *session.Manager, logger logging.Logger) AuthService {
	return &authService{client: c, session: s, logger: logger}
}

func (a *authService) Login(ctx context.Context, form forms.LoginForm) (session.CurrentUser, error) {
	if err := form.Validate(); err != nil {
		return session.CurrentUser{}, err
	}

	creds := form.Credentials()
	res, err := a.client.Login(ctx, creds)
	if err != nil {
		return session.CurrentUser{}, fmt.Errorf("login error: %w", err)
	}
	if res.Token == "" {
		return session.CurrentUser{}, ErrNoToken
	}

	if err := a.session.Set(ctx, res.Token, creds.Email); err != nil {
		return session.CurrentUser{}, fmt.Errorf("session saving error: %w", err)
	}

	u, err := session.DecodeClaims(res.Token)
	if err != nil {
		a.logger.Warn(ctx, "issued token has no readable identity", "error", err)
		return session.CurrentUser{Email: creds.Email}, nil
	}
	return u, nil
}

func (a *authService) Register(ctx context.Context, form forms.RegisterForm) (bool, error) {
	if err := form.Validate(); err != nil {
		return false, err
	}

	reg := form.Registration()
	res, err := a.client.Register(ctx, reg)
	if err != nil {
		return false, fmt.Errorf("register error: %w", err)
	}
	if res.Token == "" {
		return false, nil
	}

	if err := a.session.Set(ctx, res.Token, reg.Email); err != nil {
		return false, fmt.Errorf("session saving error: %w", err)
	}
	return true, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *authService) CurrentUser() (session.CurrentUser, error) {
	return a.session.CurrentUser()
}
