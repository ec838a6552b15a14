package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	setErr error
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *memStore) raw(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

type fakeRemote struct {
	token      string
	refreshErr error
	logoutErr  error
	gate       chan struct{}

	mu      sync.Mutex
	refresh int
	logout  int
}

func (f *fakeRemote) Refresh(ctx context.Context) (string, error) {
	f.mu.Lock()
	f.refresh++
	f.mu.Unlock()
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.token, f.refreshErr
}

func (f *fakeRemote) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logout++
	return f.logoutErr
}

var errDown = errors.New("network down")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return s
}

func seedRecord(t *testing.T, s *memStore, token string, u models.User) {
	t.Helper()
	require.NoError(t, saveRecord(context.Background(), s, token, u))
}

func requireInvariant(t *testing.T, m *Manager) {
	t.Helper()
	st := m.Snapshot()
	assert.Equal(t, st.AccessToken != nil, m.IsAuthenticated())
	assert.Equal(t, st.IsAuthenticated(), m.IsAuthenticated())
}

func TestNewManager_SeedsFromRecord(t *testing.T) {
	store := newMemStore()
	seedRecord(t, store, "stale", models.User{ID: 4, Email: "old@example.com"})

	m := NewManager(context.Background(), store, &fakeRemote{refreshErr: errDown}, nil)

	st := m.Snapshot()
	assert.False(t, st.Initialized)
	require.NotNil(t, st.AccessToken)
	assert.Equal(t, "stale", *st.AccessToken)
	assert.Equal(t, &models.User{ID: 4, Email: "old@example.com"}, st.User)
	requireInvariant(t, m)
}

func TestInitialize_BadRecordIsNoSession(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{name: "absent"},
		{name: "not json", raw: []byte("{oops")},
		{name: "empty token", raw: []byte(`{"access_token":"","user":{"id":1,"email":"a@b.c"}}`)},
		{name: "missing user", raw: []byte(`{"access_token":"tok"}`)},
		{name: "null user", raw: []byte(`{"access_token":"tok","user":null}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			if tt.raw != nil {
				store.data[common.SessionKey] = tt.raw
			}
			m := NewManager(context.Background(), store, &fakeRemote{refreshErr: errDown}, nil)
			m.Initialize(context.Background())

			st := m.Snapshot()
			assert.True(t, st.Initialized)
			assert.Nil(t, st.AccessToken)
			assert.Nil(t, st.User)
			assert.False(t, m.IsAuthenticated())
			requireInvariant(t, m)
		})
	}
}

func TestInitialize_RefreshOverridesStaleRecord(t *testing.T) {
	store := newMemStore()
	seedRecord(t, store, "stale", models.User{ID: 4, Email: "old@example.com"})
	fresh := signToken(t, jwt.MapClaims{"user_id": 9, "email": "new@example.com"})

	m := NewManager(context.Background(), store, &fakeRemote{token: fresh}, nil)
	m.Initialize(context.Background())

	st := m.Snapshot()
	assert.True(t, st.Initialized)
	require.NotNil(t, st.AccessToken)
	assert.Equal(t, fresh, *st.AccessToken)
	assert.Equal(t, &models.User{ID: 9, Email: "new@example.com"}, st.User)

	rec, err := loadRecord(context.Background(), store)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, fresh, rec.AccessToken)
	assert.Equal(t, models.User{ID: 9, Email: "new@example.com"}, *rec.User)
}

func TestInitialize_RefreshWithoutClaims(t *testing.T) {
	fresh := signToken(t, jwt.MapClaims{"sub": "x"})
	m := NewManager(context.Background(), newMemStore(), &fakeRemote{token: fresh}, nil)
	m.Initialize(context.Background())

	st := m.Snapshot()
	require.NotNil(t, st.AccessToken)
	assert.Equal(t, &models.User{}, st.User)
	assert.True(t, m.IsAuthenticated())
}

func TestInitialize_RefreshFailureFallsBackToRecord(t *testing.T) {
	store := newMemStore()
	seedRecord(t, store, "saved", models.User{ID: 2, Email: "me@example.com"})

	m := NewManager(context.Background(), store, &fakeRemote{refreshErr: errDown}, nil)
	m.Initialize(context.Background())

	st := m.Snapshot()
	assert.True(t, st.Initialized)
	require.NotNil(t, st.AccessToken)
	assert.Equal(t, "saved", *st.AccessToken)
	assert.Equal(t, &models.User{ID: 2, Email: "me@example.com"}, st.User)
	requireInvariant(t, m)
}

func TestInitialize_RefreshFailureWithoutRecord(t *testing.T) {
	m := NewManager(context.Background(), newMemStore(), &fakeRemote{refreshErr: errDown}, nil)
	m.Initialize(context.Background())

	st := m.Snapshot()
	assert.Equal(t, State{Initialized: true}, st)
}

func TestInitialize_RunsOnce(t *testing.T) {
	remote := &fakeRemote{refreshErr: errDown}
	m := NewManager(context.Background(), newMemStore(), remote, nil)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Initialize(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, remote.refresh)
	assert.True(t, m.IsInitialized())
}

func TestStart_LatchReleasesWaiters(t *testing.T) {
	gate := make(chan struct{})
	fresh := signToken(t, jwt.MapClaims{"user_id": 1, "email": "a@b.c"})
	m := NewManager(context.Background(), newMemStore(), &fakeRemote{token: fresh, gate: gate}, nil)

	m.Start(context.Background())
	assert.False(t, m.IsInitialized())

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, m.Wait(short), context.DeadlineExceeded)

	close(gate)
	select {
	case <-m.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("manager never initialized")
	}
	require.NoError(t, m.Wait(context.Background()))
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, fresh, m.AccessToken())
}

func TestLogin_SetsStateAndRecord(t *testing.T) {
	store := newMemStore()
	m := NewManager(context.Background(), store, &fakeRemote{refreshErr: errDown}, nil)
	m.Initialize(context.Background())

	u := models.User{ID: 5, Email: "five@example.com"}
	m.Login(context.Background(), "tok5", u)

	st := m.Snapshot()
	require.NotNil(t, st.AccessToken)
	assert.Equal(t, "tok5", *st.AccessToken)
	assert.Equal(t, &u, st.User)
	assert.Equal(t, "tok5", m.AccessToken())

	assert.JSONEq(t, `{"access_token":"tok5","user":{"id":5,"email":"five@example.com"}}`,
		string(store.raw(common.SessionKey)))
	requireInvariant(t, m)
}

func TestLogin_StorageFailureKeepsMemoryState(t *testing.T) {
	store := newMemStore()
	store.setErr = errors.New("disk full")
	m := NewManager(context.Background(), store, &fakeRemote{}, nil)

	m.Login(context.Background(), "tok", models.User{ID: 1})
	assert.True(t, m.IsAuthenticated())
	assert.Nil(t, store.raw(common.SessionKey))
}

func TestLogout_ClearsEvenWhenRemoteFails(t *testing.T) {
	for _, remoteErr := range []error{nil, errDown} {
		store := newMemStore()
		remote := &fakeRemote{refreshErr: errDown, logoutErr: remoteErr}
		m := NewManager(context.Background(), store, remote, nil)
		m.Initialize(context.Background())
		m.Login(context.Background(), "tok", models.User{ID: 1, Email: "a@b.c"})

		m.Logout(context.Background())

		assert.Equal(t, 1, remote.logout)
		assert.Equal(t, State{Initialized: true}, m.Snapshot())
		assert.Empty(t, m.AccessToken())
		assert.Nil(t, store.raw(common.SessionKey))
		requireInvariant(t, m)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	m := NewManager(context.Background(), newMemStore(), &fakeRemote{}, nil)
	m.Login(context.Background(), "tok", models.User{ID: 1, Email: "a@b.c"})

	st := m.Snapshot()
	*st.AccessToken = "changed"
	st.User.Email = "changed"

	again := m.Snapshot()
	assert.Equal(t, "tok", *again.AccessToken)
	assert.Equal(t, "a@b.c", again.User.Email)
}
