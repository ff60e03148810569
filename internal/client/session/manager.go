package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/together/internal/client/client"
	"github.com/dmitrijs2005/together/internal/client/models"
	"github.com/dmitrijs2005/together/internal/logging"
)

// API is the slice of the backend the manager calls.
type API interface {
	Login(ctx context.Context, username, password string) (client.TokenPair, error)
	CurrentUser(ctx context.Context) (json.RawMessage, error)
}

// CredentialStore persists tokens and the cached identity.
// CachedIdentity returns (nil, nil) when nothing is cached.
type CredentialStore interface {
	AccessToken(ctx context.Context) (string, error)
	SetTokens(ctx context.Context, access, refresh string) error
	CachedIdentity(ctx context.Context) (*models.Identity, error)
	SetCachedIdentity(ctx context.Context, id *models.Identity) error
	Clear(ctx context.Context) error
}

type Option func(*Manager)

// WithStaleRefetchGuard makes the manager drop results of operations that
// were overtaken by a later Login, Logout or Refetch.
func WithStaleRefetchGuard(enabled bool) Option {
	return func(m *Manager) { m.staleGuard = enabled }
}

type Manager struct {
	api        API
	store      CredentialStore
	logger     logging.Logger
	staleGuard bool

	mu         sync.RWMutex
	snap       Snapshot
	generation uint64
	subs       map[int]chan Snapshot
	nextSub    int
}

// NewManager returns a manager in the Resolving state with no identity.
// Call Refetch to perform the initial resolution.
func NewManager(api API, store CredentialStore, logger logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		api:    api,
		store:  store,
		logger: logger,
		snap:   Snapshot{Role: models.RoleGuestVolunteer, State: Resolving},
		subs:   make(map[int]chan Snapshot),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

func (m *Manager) Identity() *models.Identity {
	return m.Snapshot().Identity
}

func (m *Manager) Role() models.Role {
	return m.Snapshot().Role
}

func (m *Manager) IsLoading() bool {
	return m.Snapshot().IsLoading()
}

// Subscribe returns a channel that receives the current snapshot right away
// and then every committed change. Only the latest value is kept for a slow
// reader. The returned func unsubscribes and closes the channel.
func (m *Manager) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	ch <- m.snap
	m.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
			close(ch)
		})
	}
}

// Refetch resolves the identity from the stored credentials. It never
// fails; see the package doc for the fallback rules.
func (m *Manager) Refetch(ctx context.Context) {
	gen := m.begin()
	m.commit(gen, m.resolve(ctx))
}

// Login exchanges username/password for tokens, stores them and resolves
// the identity. On failure the session is a resolved guest and the error is
// returned.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	gen := m.begin()

	pair, err := m.api.Login(ctx, username, password)
	if err != nil {
		m.commit(gen, guest())
		return fmt.Errorf("login: %w", err)
	}

	if err := m.store.SetTokens(ctx, pair.Access, pair.Refresh); err != nil {
		m.commit(gen, guest())
		return fmt.Errorf("store credentials: %w", err)
	}

	m.Refetch(ctx)
	return nil
}

// Logout drops stored credentials and the cached identity and leaves the
// session as a resolved guest. Storage failures are logged, not returned.
func (m *Manager) Logout(ctx context.Context) {
	gen := m.begin()

	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn(ctx, "clearing credentials failed", "error", err)
	}

	m.commit(gen, guest())
	m.logger.Info(ctx, "logged out")
}

func (m *Manager) resolve(ctx context.Context) Snapshot {
	token, err := m.store.AccessToken(ctx)
	if err != nil {
		m.logger.Warn(ctx, "reading access token failed", "error", err)
		return guest()
	}
	if token == "" {
		return guest()
	}

	id, err := m.fetchIdentity(ctx)
	if err == nil {
		if err := m.store.SetCachedIdentity(ctx, id); err != nil {
			m.logger.Warn(ctx, "caching identity failed", "error", err)
		}
		m.logger.Info(ctx, "session resolved", "role", id.Role, "source", "server")
		return resolved(id)
	}

	if errors.Is(err, client.ErrUnauthorized) {
		if err := m.store.Clear(ctx); err != nil {
			m.logger.Warn(ctx, "clearing rejected credentials failed", "error", err)
		}
		m.logger.Info(ctx, "stored credentials rejected, continuing as guest")
		return guest()
	}

	m.logger.Warn(ctx, "identity refresh failed", "error", err)

	cached, cerr := m.store.CachedIdentity(ctx)
	if cerr != nil {
		m.logger.Warn(ctx, "reading cached identity failed", "error", cerr)
	}
	if cached == nil {
		return guest()
	}
	m.logger.Info(ctx, "session resolved", "role", cached.Role, "source", "cache")
	return resolved(cached)
}

func (m *Manager) fetchIdentity(ctx context.Context) (*models.Identity, error) {
	raw, err := m.api.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return Normalize(raw)
}

// begin moves the session to Resolving and returns the generation of the
// operation that just started.
func (m *Manager) begin() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	m.snap.State = Resolving
	m.publish()
	return m.generation
}

func (m *Manager) commit(gen uint64, s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.staleGuard && gen != m.generation {
		return
	}
	m.snap = s
	m.publish()
}

// publish must be called with mu held.
func (m *Manager) publish() {
	for _, ch := range m.subs {
		select {
		case ch <- m.snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- m.snap
		}
	}
}
