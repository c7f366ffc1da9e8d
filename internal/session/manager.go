package session

import (
	"context"
	"sync"

	"kassa/internal/data"
	"kassa/internal/pos"

	"go.uber.org/zap"
)

type State string

const (
	StateLoggedOut      State = "logged_out"
	StateAuthenticating State = "authenticating"
	StateLoggedIn       State = "logged_in"
)

// Manager owns the credential lifecycle. Any failure while establishing or
// resuming a session fails closed: credential gone, identity gone, snapshot
// empty. A token without a resolvable identity is an invalid session.
type Manager struct {
	client *pos.Client
	store  *data.Store
	tokens *TokenStore
	logger *zap.Logger

	mu    sync.Mutex
	state State
}

func NewManager(client *pos.Client, store *data.Store, tokens *TokenStore, logger *zap.Logger) *Manager {
	return &Manager{
		client: client,
		store:  store,
		tokens: tokens,
		logger: logger.Named("session"),
		state:  StateLoggedOut,
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// Resume attempts silent resumption from the stored credential. An empty
// slot skips straight to logged out with no network call. A rejected token
// or a failed snapshot fetch is treated exactly like an explicit logout,
// including removal of the now-invalid credential.
func (m *Manager) Resume(ctx context.Context) bool {
	token, err := m.tokens.Load()
	if err != nil {
		m.logger.Warn("reading stored credential", zap.Error(err))
	}
	if token == "" {
		m.setState(StateLoggedOut)
		return false
	}

	m.setState(StateAuthenticating)
	m.client.SetToken(token)
	if err := m.store.RefreshAll(ctx); err != nil {
		m.logger.Info("session resumption rejected", zap.Error(err))
		m.Logout()
		return false
	}

	m.setState(StateLoggedIn)
	m.logger.Info("session resumed")
	return true
}

// Login exchanges the PIN for a credential, persists it and loads the
// snapshot. It reports success as a bare boolean: a wrong PIN and a dead
// network look the same to the caller. A rejected login leaves the stored
// credential and the snapshot untouched.
func (m *Manager) Login(ctx context.Context, pin string) bool {
	prev := m.State()
	m.setState(StateAuthenticating)

	token, err := m.client.Login(ctx, pin)
	if err != nil || token == "" {
		m.logger.Info("login rejected", zap.Error(err))
		// Nothing was discarded, so an already-established session stays.
		m.setState(prev)
		return false
	}

	if err := m.tokens.Save(token); err != nil {
		m.logger.Warn("persisting credential", zap.Error(err))
	}
	m.client.SetToken(token)

	if err := m.store.RefreshAll(ctx); err != nil {
		m.logger.Warn("initial fetch after login failed", zap.Error(err))
		m.Logout()
		return false
	}

	m.setState(StateLoggedIn)
	m.logger.Info("logged in")
	return true
}

// Logout synchronously discards the credential, the identity and the
// snapshot. It never fails and has no side effects beyond local state.
func (m *Manager) Logout() {
	if err := m.tokens.Clear(); err != nil {
		m.logger.Warn("clearing stored credential", zap.Error(err))
	}
	m.client.ClearToken()
	m.store.Reset()
	m.setState(StateLoggedOut)
}

// CurrentUser is the authenticated employee or nil.
func (m *Manager) CurrentUser() *pos.Employee {
	return m.store.CurrentUser()
}

// HasPermission reports whether the current identity's role grants the
// permission. Recomputed on every call; false whenever nobody is logged in.
func (m *Manager) HasPermission(p pos.Permission) bool {
	return HasPermission(m.store.CurrentUser(), p)
}

// HasPermission is the pure predicate behind Manager.HasPermission.
func HasPermission(user *pos.Employee, p pos.Permission) bool {
	if user == nil || user.Role == nil {
		return false
	}
	for _, granted := range user.Role.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}
