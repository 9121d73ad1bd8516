package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophtodo/internal/logging"
)

// Manager owns the process-wide session. It is safe for concurrent use: the
// transport reads the token from request goroutines while the REPL sets and
// clears it.
type Manager struct {
	mu       sync.RWMutex
	store    Store
	logger   logging.Logger
	data     Data
	onChange []func(loggedIn bool)
}

func NewManager(store Store, logger logging.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// Restore loads the persisted session. Call once at startup.
func (m *Manager) Restore(ctx context.Context) error {
	d, err := m.store.Load(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.data = d
	m.mu.Unlock()

	m.logger.Debug(ctx, "session restored", "logged_in", d.Token != "")
	return nil
}

// Set stores a freshly issued token. An empty email keeps the remembered one.
func (m *Manager) Set(ctx context.Context, token, email string) error {
	if err := m.store.Save(ctx, Data{Token: token, Email: email}); err != nil {
		return err
	}

	m.mu.Lock()
	m.data.Token = token
	if email != "" {
		m.data.Email = email
	}
	m.mu.Unlock()

	m.notify(token != "")
	return nil
}

// Clear drops the token. The in-memory token is cleared even if the store
// fails, so no further request carries it.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	had := m.data.Token != ""
	m.data.Token = ""
	m.mu.Unlock()

	err := m.store.Clear(ctx)
	if err != nil {
		m.logger.Error(ctx, "failed to clear stored token", "error", err)
	}
	if had {
		m.notify(false)
	}
	return err
}

// Token returns the current bearer token, or "".
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.Token
}

// Email returns the email of the last successful login.
func (m *Manager) Email() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.Email
}

func (m *Manager) LoggedIn() bool {
	return m.Token() != ""
}

// CurrentUser decodes the identity from the current token.
func (m *Manager) CurrentUser() (CurrentUser, error) {
	return DecodeClaims(m.Token())
}

// OnChange registers fn to be called after every login or logout transition.
func (m *Manager) OnChange(fn func(loggedIn bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, fn)
}

func (m *Manager) notify(loggedIn bool) {
	m.mu.RLock()
	hooks := append([]func(bool){}, m.onChange...)
	m.mu.RUnlock()

	for _, fn := range hooks {
		fn(loggedIn)
	}
}
