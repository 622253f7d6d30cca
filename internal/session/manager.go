package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/clinops/wardview/internal/authz"
	"github.com/clinops/wardview/internal/credstore"
	"github.com/clinops/wardview/internal/identity"
	"github.com/clinops/wardview/internal/principal"
)

// Sentinel errors
var (
	// ErrNotReady is returned when Login is called before the session has
	// been initialized.
	ErrNotReady = errors.New("session not initialized")

	// ErrLoginSuperseded is returned when a login response arrives after a
	// newer attempt or a logout has taken over; state is untouched.
	ErrLoginSuperseded = errors.New("login attempt superseded")
)

// TokenArmer is the transport-side collaborator that carries the bearer
// token on outgoing requests.
type TokenArmer interface {
	SetBearerToken(token string)
	ClearBearerToken()
}

// invalidateTimeout bounds the best-effort remote invalidation on logout.
const invalidateTimeout = 5 * time.Second

// Manager drives the session state machine against three sources of
// truth: the credential store, the identity gateway, and the transport
// token. Observers never see Authenticated before the store write is
// durable and the transport is armed.
type Manager struct {
	gateway   identity.Gateway
	store     *credstore.Store
	transport TokenArmer

	mu           sync.Mutex
	current      Session
	initDone     chan struct{} // closed when the in-flight bootstrap settles
	loginAttempt uuid.UUID     // fences stale login responses
	subscribers  []chan Session
}

// NewManager creates a session manager in the Uninitialized state.
func NewManager(gateway identity.Gateway, store *credstore.Store, transport TokenArmer) *Manager {
	return &Manager{
		gateway:   gateway,
		store:     store,
		transport: transport,
		current:   Session{State: StateUninitialized},
	}
}

// Initialize restores the session from the credential store. Safe to call
// from several components at once: the first caller performs the single
// bootstrap read, callers arriving while it is in flight wait for it to
// settle, and calls after settlement are no-ops.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	switch m.current.State {
	case StateInitializing:
		done := m.initDone
		m.mu.Unlock()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	case StateAuthenticated, StateAnonymous:
		m.mu.Unlock()
		return nil
	}

	done := make(chan struct{})
	m.initDone = done
	m.setLocked(Session{State: StateInitializing})
	m.mu.Unlock()

	m.bootstrap()
	close(done)
	return nil
}

// ForceInitialize re-runs the bootstrap read even after the session has
// settled. Explicit currency re-checks only; a concurrent bootstrap is
// joined instead of raced.
func (m *Manager) ForceInitialize(ctx context.Context) error {
	m.mu.Lock()
	if m.current.State == StateInitializing {
		m.mu.Unlock()
		return m.Initialize(ctx)
	}

	done := make(chan struct{})
	m.initDone = done
	m.setLocked(Session{State: StateInitializing})
	m.mu.Unlock()

	m.bootstrap()
	close(done)
	return nil
}

// bootstrap reads the store once and settles the session. The persisted
// snapshot is trusted without a network round-trip; it stays trusted
// until a protected call fails and the application reacts with Logout.
func (m *Manager) bootstrap() {
	cred, err := m.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("bootstrap failed to read credential store")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil || cred == nil {
		// to the user, a fresh visit and an expired session look the same
		if clearErr := m.store.Clear(); clearErr != nil {
			log.Warn().Err(clearErr).Msg("bootstrap failed to clear credential store")
		}
		m.transport.ClearBearerToken()
		m.setLocked(Session{State: StateAnonymous})
		return
	}

	p := cred.Principal
	m.transport.SetBearerToken(cred.Token)
	m.setLocked(Session{State: StateAuthenticated, Principal: &p, Token: cred.Token})

	log.Debug().Str("principal", p.ID).Msg("session restored from persisted credential")
}

// Login authenticates raw credentials against the identity gateway. On
// success the normalized principal is persisted, the transport armed, and
// the session becomes Authenticated, in that order. Failures are surfaced
// to the caller and never retried here.
func (m *Manager) Login(ctx context.Context, creds identity.Credentials) (*principal.Principal, error) {
	m.mu.Lock()
	if !m.current.Settled() {
		m.mu.Unlock()
		return nil, ErrNotReady
	}
	attempt := uuid.New()
	m.loginAttempt = attempt
	m.mu.Unlock()

	grant, err := m.gateway.Authenticate(ctx, creds)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loginAttempt != attempt {
		// a newer attempt or a logout took over while we waited
		return nil, ErrLoginSuperseded
	}

	if err != nil {
		if m.current.State == StateAuthenticated {
			// a rejected re-login replaces the prior grant with nothing
			m.dropCredentialLocked()
		}
		log.Debug().Err(err).Msg("login failed")
		return nil, err
	}

	p := principal.Normalize(grant.Principal)
	if saveErr := m.store.Save(grant.Token, p); saveErr != nil {
		m.dropCredentialLocked()
		return nil, fmt.Errorf("failed to persist credential: %w", saveErr)
	}
	m.transport.SetBearerToken(grant.Token)
	m.setLocked(Session{State: StateAuthenticated, Principal: &p, Token: grant.Token})

	log.Info().Str("principal", p.ID).Msg("login succeeded")

	return &p, nil
}

// Logout clears local session state unconditionally and is idempotent.
// Remote invalidation is best-effort and never blocks the local
// transition.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	prior := m.current
	m.loginAttempt = uuid.New()
	m.dropCredentialLocked()
	m.mu.Unlock()

	if prior.State == StateAuthenticated && prior.Token != "" {
		go func(token string) {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
			defer cancel()
			if err := m.gateway.Invalidate(ctx, token); err != nil {
				log.Debug().Err(err).Msg("remote session invalidation failed")
			}
		}(prior.Token)
	}
}

// dropCredentialLocked moves to Anonymous, clearing every local trace of
// the prior credential.
func (m *Manager) dropCredentialLocked() {
	if err := m.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear credential store")
	}
	m.transport.ClearBearerToken()
	m.setLocked(Session{State: StateAnonymous})
}

// setLocked records the next snapshot and fans it out to subscribers. A
// subscriber that has not drained its channel keeps only the latest
// snapshot.
func (m *Manager) setLocked(next Session) {
	m.current = next
	for _, ch := range m.subscribers {
		select {
		case ch <- next:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- next:
			default:
			}
		}
	}
}

// Current returns the current session snapshot.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// IsAuthenticated reports whether a valid credential is held.
func (m *Manager) IsAuthenticated() bool {
	return m.Current().IsAuthenticated()
}

// Principal returns the authenticated principal, or nil.
func (m *Manager) Principal() *principal.Principal {
	cur := m.Current()
	if cur.State != StateAuthenticated {
		return nil
	}
	return cur.Principal
}

// Subscribe registers for session snapshots. Each transition is delivered
// to the returned channel; the cancel func removes the subscription.
func (m *Manager) Subscribe() (<-chan Session, func()) {
	ch := make(chan Session, 1)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, sub := range m.subscribers {
			if sub == ch {
				m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
				break
			}
		}
	}

	return ch, cancel
}

// HasRole and friends evaluate the predicate set against the current
// principal; while not authenticated every predicate is false.

func (m *Manager) HasRole(role string) bool {
	return authz.HasRole(m.Principal(), role)
}

func (m *Manager) HasAnyRole(roles ...string) bool {
	return authz.HasAnyRole(m.Principal(), roles)
}

func (m *Manager) HasAllRoles(roles ...string) bool {
	return authz.HasAllRoles(m.Principal(), roles)
}

func (m *Manager) HasPermission(perm string) bool {
	return authz.HasPermission(m.Principal(), perm)
}

func (m *Manager) HasAnyPermission(perms ...string) bool {
	return authz.HasAnyPermission(m.Principal(), perms)
}

func (m *Manager) HasAllPermissions(perms ...string) bool {
	return authz.HasAllPermissions(m.Principal(), perms)
}
