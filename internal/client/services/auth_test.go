package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophtodo/internal/client/client"
	"github.com/dmitrijs2005/gophtodo/internal/client/forms"
	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/session"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
)

// fakeClient implements the auth half of client.Client. Other methods are
// left to the embedded nil interface and must not be called.
type fakeClient struct {
	client.Client

	LoginRet    models.AuthResult
	LoginErr    error
	RegisterRet models.AuthResult
	RegisterErr error

	LoginCalls    []models.Credentials
	RegisterCalls []models.Registration
}

func (f *fakeClient) Login(_ context.Context, c models.Credentials) (models.AuthResult, error) {
	f.LoginCalls = append(f.LoginCalls, c)
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, r models.Registration) (models.AuthResult, error) {
	f.RegisterCalls = append(f.RegisterCalls, r)
	return f.RegisterRet, f.RegisterErr
}

func token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func newService(fc *fakeClient) (AuthService, *session.Manager) {
	m := session.NewManager(session.NewMemoryStore(), logging.Discard())
	return NewAuthService(fc, m, logging.Discard()), m
}

func TestLogin_Success_StoresTokenAndEmail(t *testing.T) {
	tok := token(t, jwt.MapClaims{"id": "u1", "username": "ann"})
	fc := &fakeClient{LoginRet: models.AuthResult{Token: tok}}
	svc, m := newService(fc)

	u, err := svc.Login(context.Background(), forms.LoginForm{Email: "ann@example.com", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, tok, m.Token())
	assert.Equal(t, "ann@example.com", m.Email())

	cur, err := svc.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, "ann", cur.Username)
}

func TestLogin_InvalidForm_NoRequest(t *testing.T) {
	fc := &fakeClient{}
	svc, _ := newService(fc)

	_, err := svc.Login(context.Background(), forms.LoginForm{Email: "nope"})
	require.Error(t, err)
	assert.Contains(t, forms.FieldErrors(err), "email")
	assert.Empty(t, fc.LoginCalls)
}

func TestLogin_ServerRejects(t *testing.T) {
	fc := &fakeClient{LoginErr: &client.APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}}
	svc, m := newService(fc)

	_, err := svc.Login(context.Background(), forms.LoginForm{Email: "ann@example.com", Password: "bad"})
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", client.UserMessage(err, "Login failed"))
	assert.False(t, m.LoggedIn())
}

func TestLogin_NoToken(t *testing.T) {
	svc, m := newService(&fakeClient{})

	_, err := svc.Login(context.Background(), forms.LoginForm{Email: "ann@example.com", Password: "pw"})
	require.ErrorIs(t, err, ErrNoToken)
	assert.False(t, m.LoggedIn())
}

func TestRegister(t *testing.T) {
	fc := &fakeClient{}
	svc, m := newService(fc)
	ctx := context.Background()
	form := forms.RegisterForm{Name: "Ann", Email: "ann@example.com", Password: "pw"}

	signedIn, err := svc.Register(ctx, form)
	require.NoError(t, err)
	assert.False(t, signedIn)
	assert.False(t, m.LoggedIn())
	assert.Equal(t, []models.Registration{{Name: "Ann", Email: "ann@example.com", Password: "pw"}}, fc.RegisterCalls)

	fc.RegisterRet = models.AuthResult{Token: token(t, jwt.MapClaims{"id": "u1"})}
	signedIn, err = svc.Register(ctx, form)
	require.NoError(t, err)
	assert.True(t, signedIn)
	assert.True(t, m.LoggedIn())

	require.NoError(t, svc.Logout(ctx))
	assert.False(t, m.LoggedIn())
	assert.Equal(t, "ann@example.com", m.Email())
}
