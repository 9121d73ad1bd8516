package cli

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dmitrijs2005/gophtodo/internal/client/client"
	"github.com/dmitrijs2005/gophtodo/internal/client/forms"
	"github.com/dmitrijs2005/gophtodo/internal/client/services"
	"github.com/dmitrijs2005/gophtodo/internal/client/view"
	"github.com/dmitrijs2005/gophtodo/internal/common"
)

// Register prompts for name, email and password and creates the account.
//
// Validation errors are printed per field and nothing is sent. When the
// server also issues a token the user is signed in straight away; otherwise
// they are asked to log in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := forms.RegisterForm{Name: name, Email: email, Password: string(password)}
	signedIn, err := a.auth.Register(ctx, form)
	if err != nil {
		a.reportAuthError(err, "Registration failed")
		return err
	}

	if !signedIn {
		a.println("Registration successful! Please login.")
		return nil
	}
	a.signedIn(ctx)
	return nil
}

// Login prompts for credentials, stores the issued token and loads the
// board. The last used email is offered as the default.
func (a *App) Login(ctx context.Context) error {
	prompt := "Enter email"
	last := a.session.Email()
	if last != "" {
		prompt += " [" + last + "]"
	}
	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = last
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, forms.LoginForm{Email: email, Password: string(password)})
	if err != nil {
		if errors.Is(err, services.ErrNoToken) {
			a.println(view.ErrorBanner("Login failed: No token received"))
			return err
		}
		a.reportAuthError(err, "Login failed")
		return err
	}

	name := user.Name
	if name == "" {
		name = user.Email
	}
	a.printf("Logged in as %s\n", name)
	a.signedIn(ctx)
	return nil
}

// Logout drops the session. The session hook prints the login hint.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
		return err
	}
	return nil
}

// signedIn starts a fresh list screen for the new session.
func (a *App) signedIn(ctx context.Context) {
	a.ctl = a.newController()
	a.mount(ctx)
}

func (a *App) reportAuthError(err error, fallback string) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		a.println(view.FieldErrors(forms.FieldErrors(err)))
		return
	}
	a.println(view.ErrorBanner(client.UserMessage(err, fallback)))
}
