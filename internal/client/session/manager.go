package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// Remote is the part of the auth API the Manager talks to.
type Remote interface {
	// Refresh trades the refresh credential held by the transport for a new
	// access token.
	Refresh(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}

// State is a point-in-time copy of the session.
type State struct {
	User        *models.User
	AccessToken *string
	Initialized bool
}

// IsAuthenticated reports whether the state carries an access token.
func (s State) IsAuthenticated() bool {
	return s.AccessToken != nil
}

// Manager holds the single active session of the client. It is safe for
// concurrent use.
type Manager struct {
	store  Store
	remote Remote
	log    logging.Logger

	mu    sync.RWMutex
	user  *models.User
	token *string

	initOnce sync.Once
	ready    chan struct{}
}

// NewManager builds a Manager and seeds it from the persisted record. The
// seeded state is tentative until Initialize (or Start) has run.
func NewManager(ctx context.Context, store Store, remote Remote, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	m := &Manager{
		store:  store,
		remote: remote,
		log:    log.With("component", "session"),
		ready:  make(chan struct{}),
	}

	rec, err := loadRecord(ctx, store)
	if err != nil {
		m.log.Warn(ctx, "ignoring persisted session", "err", err)
	}
	m.apply(rec)
	return m
}

// Start runs Initialize in the background and returns immediately.
func (m *Manager) Start(ctx context.Context) {
	go m.Initialize(ctx)
}

// Initialize performs the silent refresh once per Manager. On success the
// state is replaced by the refreshed token and its claims; on failure it
// falls back to the persisted record, or to no session. Either way the
// Manager is initialized when Initialize returns. Later calls wait for the
// first one and do nothing else.
func (m *Manager) Initialize(ctx context.Context) {
	m.initOnce.Do(func() {
		defer close(m.ready)

		token, err := m.remote.Refresh(ctx)
		if err != nil {
			m.log.Debug(ctx, "silent refresh failed", "err", err)
			rec, lerr := loadRecord(ctx, m.store)
			if lerr != nil {
				m.log.Warn(ctx, "ignoring persisted session", "err", lerr)
			}
			m.apply(rec)
			if rec != nil {
				m.log.Info(ctx, "session restored from local record", "user_id", rec.User.ID)
			}
			return
		}

		user := userFromToken(token)
		m.set(token, user)
		if err := saveRecord(ctx, m.store, token, user); err != nil {
			m.log.Warn(ctx, "cannot persist refreshed session", "err", err)
		}
		m.log.Info(ctx, "session refreshed", "user_id", user.ID, "email", user.Email)
	})
}

// Login installs a session obtained from register or login and persists it.
// A storage failure is logged; the in-memory session is set regardless.
func (m *Manager) Login(ctx context.Context, token string, user models.User) {
	m.set(token, user)
	if err := saveRecord(ctx, m.store, token, user); err != nil {
		m.log.Warn(ctx, "cannot persist session", "err", err)
	}
}

// Logout tells the server to drop the refresh credential, then clears the
// local session whatever the server said.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.remote.Logout(ctx); err != nil {
		m.log.Warn(ctx, "remote logout failed", "err", err)
	}

	m.mu.Lock()
	m.user, m.token = nil, nil
	m.mu.Unlock()

	if err := clearRecord(ctx, m.store); err != nil {
		m.log.Warn(ctx, "cannot delete session record", "err", err)
	}
}

// Snapshot returns a consistent copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := State{Initialized: m.IsInitialized()}
	if m.user != nil {
		u := *m.user
		s.User = &u
	}
	if m.token != nil {
		t := *m.token
		s.AccessToken = &t
	}
	return s
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != nil
}

func (m *Manager) IsInitialized() bool {
	select {
	case <-m.ready:
		return true
	default:
		return false
	}
}

// Done is closed once the Manager is initialized.
func (m *Manager) Done() <-chan struct{} {
	return m.ready
}

// Wait blocks until the Manager is initialized or ctx ends.
func (m *Manager) Wait(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AccessToken returns the bearer token, or "" without a session.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == nil {
		return ""
	}
	return *m.token
}

func (m *Manager) set(token string, user models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = &token
	m.user = &user
}

func (m *Manager) apply(rec *record) {
	if rec == nil {
		m.mu.Lock()
		m.user, m.token = nil, nil
		m.mu.Unlock()
		return
	}
	m.set(rec.AccessToken, *rec.User)
}
