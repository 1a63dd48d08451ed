// Package session owns the client's authentication state: the
// logged-in identity, its access/refresh token pair, the automatic
// refresh decision, and the synchronization that keeps concurrent
// consumers from ever observing a torn or duplicated refresh.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/DrewAMSD/lifting-log/api"
	"github.com/DrewAMSD/lifting-log/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Manager is the session state machine. It is the sole owner of the
// in-memory session and the sole writer of the persistent store.
// Construct one per process and pass it by reference to consumers.
type Manager struct {
	auth  api.Auth
	store Store

	nowTime    func() time.Time
	expirySkew time.Duration
	log        zerolog.Logger

	lock    sync.RWMutex
	status  Status
	session *Session

	// refreshGroup guarantees at most one in-flight refresh per
	// refresh token: concurrent callers attach to the pending flight
	// and all resolve from its single outcome. A second wire request
	// would risk the server treating a once-use refresh token as
	// already consumed.
	refreshGroup singleflight.Group

	subsLock    sync.Mutex
	subscribers map[int]chan State
	nextSubID   int
}

// ManagerOption modifies a Manager during construction.
type ManagerOption func(*Manager)

// WithNowTime sets the time source (primarily for testing).
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithExpirySkew makes tokens count as expired this long before their
// actual expiry, absorbing clock drift between client and server.
// Defaults to zero.
func WithExpirySkew(skew time.Duration) ManagerOption {
	return func(m *Manager) {
		m.expirySkew = skew
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager creates a Manager with the given dependencies. The
// manager starts Unresolved and performs no I/O until Resolve is
// called.
func NewManager(store Store, auth api.Auth, options ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[NewManager] store is required")
	}
	if auth == nil {
		return nil, errors.New("[NewManager] auth client is required")
	}

	manager := &Manager{
		auth:        auth,
		store:       store,
		nowTime:     time.Now,
		log:         zerolog.Nop(),
		status:      StatusUnresolved,
		subscribers: make(map[int]chan State),
	}

	for _, opt := range options {
		opt(manager)
	}

	return manager, nil
}

// Resolve rehydrates the session from the store and settles the
// initial state. A stored session with an unexpired access token is
// adopted as-is; one with only a live refresh token is refreshed
// before Authenticated is published, so consumers never see an
// authenticated flash that immediately reverts. Anything else ends
// Unauthenticated with the store cleared.
func (m *Manager) Resolve(ctx context.Context) State {
	stored, err := m.store.Load()
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to load stored session")
	}
	if stored == nil || stored.Identity.Username == "" ||
		stored.AccessToken.Value == "" || stored.RefreshToken.Value == "" {
		m.setUnauthenticated(true)
		return m.Current()
	}

	now := m.nowTime()
	if !stored.AccessToken.ExpiredWithin(now, m.expirySkew) {
		m.setAuthenticated(stored, false)
		return m.Current()
	}
	if stored.RefreshToken.Expired(now) {
		m.setUnauthenticated(true)
		return m.Current()
	}

	newToken, err := m.auth.Refresh(ctx, stored.RefreshToken.Value)
	switch {
	case err == nil:
		stored.AccessToken = newToken
		m.setAuthenticated(stored, true)
	case errors.Is(err, api.ErrRefreshTokenInvalid):
		m.setUnauthenticated(true)
	default:
		// Transient: the stored session is still plausibly valid.
		// Keep it; the next AccessToken call retries the refresh.
		m.log.Warn().Err(err).Msg("startup refresh failed, keeping stored session")
		m.setAuthenticated(stored, false)
	}
	return m.Current()
}

// Login exchanges credentials for a session. On credential failure the
// state is unchanged and the error carries the server's detail text;
// on transient failure the state is likewise unchanged.
func (m *Manager) Login(ctx context.Context, username, password string) (Session, error) {
	result, err := m.auth.Login(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	newSession := &Session{
		Identity:     Identity{Username: result.Username},
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}
	m.setAuthenticated(newSession, true)
	return *newSession, nil
}

// AccessToken returns a currently valid access token. With an
// unexpired token this is the hot path: no locks beyond a read lock,
// no I/O. With an expired token it refreshes, with at most one wire
// request no matter how many callers arrive concurrently. An
// authoritative rejection clears the session and returns
// ErrSessionExpired; a transient failure leaves the prior state
// untouched so a later retry can succeed.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	m.lock.RLock()
	if m.status != StatusAuthenticated {
		m.lock.RUnlock()
		return "", ErrNotAuthenticated
	}
	accessToken := m.session.AccessToken
	refreshToken := m.session.RefreshToken
	m.lock.RUnlock()

	now := m.nowTime()
	if !accessToken.ExpiredWithin(now, m.expirySkew) {
		return accessToken.Value, nil
	}

	if refreshToken.Expired(now) {
		m.setUnauthenticated(true)
		return "", ErrSessionExpired
	}

	newToken, err := m.refreshAccessToken(ctx, refreshToken.Value)
	if err != nil {
		if errors.Is(err, api.ErrRefreshTokenInvalid) {
			return "", ErrSessionExpired
		}
		return "", errors.Wrap(err, "[Manager.AccessToken] refresh")
	}
	return newToken.Value, nil
}

// refreshAccessToken performs the deduplicated refresh. The outcome is
// committed inside the flight, not per caller: even if every caller
// stops waiting, a minted token or an authoritative invalidation still
// reaches shared state, which is why the wire call runs on a detached
// context.
func (m *Manager) refreshAccessToken(ctx context.Context, refreshValue string) (token.Token, error) {
	result, err, _ := m.refreshGroup.Do(refreshValue, func() (any, error) {
		// A caller that lost the race to an already-completed refresh
		// lands here with a fresh token committed; hand it out instead
		// of spending the refresh token again.
		m.lock.RLock()
		if m.status == StatusAuthenticated && !m.session.AccessToken.ExpiredWithin(m.nowTime(), m.expirySkew) {
			freshToken := m.session.AccessToken
			m.lock.RUnlock()
			return freshToken, nil
		}
		m.lock.RUnlock()

		newToken, err := m.auth.Refresh(context.WithoutCancel(ctx), refreshValue)
		if err != nil {
			if errors.Is(err, api.ErrRefreshTokenInvalid) {
				m.setUnauthenticated(true)
			}
			return token.Token{}, err
		}
		m.adoptAccessToken(newToken)
		return newToken, nil
	})
	if err != nil {
		return token.Token{}, err
	}
	return result.(token.Token), nil
}

// Logout revokes the refresh token best-effort and always clears the
// local session. Revoke failures are logged, never surfaced: logout
// must succeed locally no matter what the network does.
func (m *Manager) Logout(ctx context.Context) {
	m.lock.RLock()
	var refreshValue string
	if m.status == StatusAuthenticated {
		refreshValue = m.session.RefreshToken.Value
	}
	m.lock.RUnlock()

	if refreshValue != "" {
		if err := m.auth.Revoke(ctx, refreshValue); err != nil {
			m.log.Warn().Err(err).Msg("refresh token revoke failed")
		}
	}
	m.setUnauthenticated(true)
}

// DeleteAccount deletes the account server-side. The local session is
// cleared regardless of the server outcome: deletion is user-initiated
// and must not strand the client authenticated-but-broken. The server
// error, if any, is returned for display.
func (m *Manager) DeleteAccount(ctx context.Context) error {
	m.lock.RLock()
	authenticated := m.status == StatusAuthenticated
	m.lock.RUnlock()
	if !authenticated {
		return ErrNotAuthenticated
	}

	defer m.setUnauthenticated(true)

	accessToken, err := m.AccessToken(ctx)
	if err != nil {
		return errors.Wrap(err, "[Manager.DeleteAccount] acquiring access token")
	}
	if err := m.auth.DeleteAccount(ctx, accessToken); err != nil {
		return errors.Wrap(err, "[Manager.DeleteAccount] server deletion")
	}
	return nil
}

// Current returns the state as a consistent snapshot; the session, if
// any, is a copy.
func (m *Manager) Current() State {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.currentLocked()
}

// Subscribe returns a channel carrying state updates with
// latest-value semantics: a slow consumer sees the newest state, not a
// backlog. The channel is seeded with the current state. The returned
// cancel function must be called to release the subscription.
func (m *Manager) Subscribe() (<-chan State, func()) {
	current := m.Current()

	m.subsLock.Lock()
	id := m.nextSubID
	m.nextSubID++
	ch := make(chan State, 1)
	ch <- current
	m.subscribers[id] = ch
	m.subsLock.Unlock()

	cancel := func() {
		m.subsLock.Lock()
		defer m.subsLock.Unlock()
		if _, ok := m.subscribers[id]; ok {
			delete(m.subscribers, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (m *Manager) currentLocked() State {
	if m.status != StatusAuthenticated {
		return State{Status: m.status}
	}
	sessionCopy := *m.session
	return State{Status: StatusAuthenticated, Session: &sessionCopy}
}

func (m *Manager) setAuthenticated(newSession *Session, persist bool) {
	m.lock.Lock()
	changed := m.status != StatusAuthenticated ||
		m.session == nil || m.session.Identity != newSession.Identity
	m.status = StatusAuthenticated
	m.session = newSession
	if persist {
		m.saveLocked()
	}
	state := m.currentLocked()
	m.lock.Unlock()

	if changed {
		m.publish(state)
	}
}

func (m *Manager) setUnauthenticated(clearStore bool) {
	m.lock.Lock()
	changed := m.status != StatusUnauthenticated
	m.status = StatusUnauthenticated
	m.session = nil
	if clearStore {
		if err := m.store.Clear(); err != nil {
			m.log.Warn().Err(err).Msg("failed to clear stored session")
		}
	}
	m.lock.Unlock()

	if changed {
		m.publish(State{Status: StatusUnauthenticated})
	}
}

// adoptAccessToken commits a freshly minted access token. A refresh
// that lands after logout is discarded rather than resurrecting the
// cleared session.
func (m *Manager) adoptAccessToken(newToken token.Token) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.status != StatusAuthenticated {
		return
	}
	m.session.AccessToken = newToken
	m.saveLocked()
}

func (m *Manager) saveLocked() {
	if err := m.store.Save(m.session); err != nil {
		m.log.Warn().Err(err).Msg("failed to persist session")
	}
}

func (m *Manager) publish(state State) {
	m.subsLock.Lock()
	defer m.subsLock.Unlock()
	for _, ch := range m.subscribers {
		// Replace an unread update instead of blocking on it.
		select {
		case <-ch:
		default:
		}
		ch <- state
	}
}
