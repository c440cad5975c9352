// Package session owns the authentication lifecycle against the correction
// backend: token persistence, startup validation, and the login/register/
// logout transitions. Commands receive a *Manager explicitly; there is no
// package-level session state.
package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/prooflab/redline/internal/api"
)

// State is the authentication state of the manager.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Manager drives the auth state machine. Valid transitions:
// unauthenticated → authenticating → authenticated, and back to
// unauthenticated on logout or startup validation failure.
type Manager struct {
	client *api.Client
	store  *TokenStore
	logger zerolog.Logger

	state State
	user  api.User
}

// NewManager wires the auth manager to the api client and token store. The
// client must have been constructed with store.Provider() so mutations here
// flow into outgoing request headers.
func NewManager(client *api.Client, store *TokenStore, logger zerolog.Logger) *Manager {
	return &Manager{
		client: client,
		store:  store,
		logger: logger,
	}
}

// State returns the current auth state.
func (m *Manager) State() State { return m.state }

// Authenticated reports whether a validated user is attached.
func (m *Manager) Authenticated() bool { return m.state == Authenticated }

// User returns the resolved account. Zero value unless Authenticated.
func (m *Manager) User() api.User { return m.user }

// Init validates any stored token at startup. A stored token that no longer
// resolves a user is cleared, settling in Unauthenticated without error;
// only transport problems are surfaced.
func (m *Manager) Init(ctx context.Context) error {
	if _, ok := m.store.Get(); !ok {
		m.state = Unauthenticated
		return nil
	}

	m.state = Authenticating
	user, err := m.client.Me(ctx)
	if err != nil {
		m.state = Unauthenticated
		if api.IsAuth(err) || api.IsNotFound(err) {
			m.logger.Debug().Err(err).Msg("stored token rejected, clearing")
			if clearErr := m.store.Clear(); clearErr != nil {
				return clearErr
			}
			return nil
		}
		return fmt.Errorf("validate stored session: %w", err)
	}

	m.user = user
	m.state = Authenticated
	return nil
}

// Login exchanges credentials for a token pair and resolves the user. Both
// steps must succeed; any failure leaves the manager Unauthenticated with no
// stored token.
func (m *Manager) Login(ctx context.Context, creds api.Credentials) error {
	return m.exchange(ctx, creds, m.client.Login)
}

// Register creates an account, then behaves exactly like Login.
func (m *Manager) Register(ctx context.Context, creds api.Credentials) error {
	return m.exchange(ctx, creds, m.client.Register)
}

func (m *Manager) exchange(ctx context.Context, creds api.Credentials, fn func(context.Context, api.Credentials) (api.TokenPair, error)) error {
	m.state = Authenticating

	tokens, err := fn(ctx, creds)
	if err != nil {
		m.state = Unauthenticated
		return err
	}
	if err := m.store.Set(tokens); err != nil {
		m.state = Unauthenticated
		return err
	}

	user, err := m.client.Me(ctx)
	if err != nil {
		// Token was issued but does not resolve a user; treat the whole
		// exchange as failed and drop the token.
		_ = m.store.Clear()
		m.state = Unauthenticated
		return fmt.Errorf("resolve user after login: %w", err)
	}

	m.user = user
	m.state = Authenticated
	m.logger.Info().Str("email", user.Email).Msg("authenticated")
	return nil
}

// Logout clears local token and user state unconditionally. The backend
// holds no server-side session to invalidate.
func (m *Manager) Logout() error {
	m.user = api.User{}
	m.state = Unauthenticated
	return m.store.Clear()
}
