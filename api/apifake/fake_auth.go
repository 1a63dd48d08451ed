package apifake

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DrewAMSD/lifting-log/api"
	"github.com/DrewAMSD/lifting-log/token"
)

var _ api.Auth = (*FakeAuth)(nil)

// FakeAuth is a programmable api.Auth for tests. Outcomes are forced
// by setting the *Err fields; call counts record what the subject
// under test actually did on the wire.
type FakeAuth struct {
	lock sync.Mutex

	// Password is the accepted password for every username.
	Password   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time

	LoginErr   error
	RefreshErr error
	RevokeErr  error
	DeleteErr  error

	LoginCalls   int
	RefreshCalls int
	RevokeCalls  int
	DeleteCalls  int

	// RefreshBarrier, when non-nil, blocks Refresh until closed.
	RefreshBarrier chan struct{}

	tokenSeq int
}

func NewFakeAuth() *FakeAuth {
	return &FakeAuth{
		Password:   "pw",
		AccessTTL:  time.Hour,
		RefreshTTL: 7 * 24 * time.Hour,
		Now:        time.Now,
	}
}

func (f *FakeAuth) Login(_ context.Context, username, password string) (*api.LoginResult, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.LoginCalls++
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	if password != f.Password {
		return nil, api.ErrInvalidCredentials
	}

	now := f.Now()
	return &api.LoginResult{
		Username:     username,
		AccessToken:  f.mintLocked("access", now.Add(f.AccessTTL)),
		RefreshToken: f.mintLocked("refresh", now.Add(f.RefreshTTL)),
	}, nil
}

func (f *FakeAuth) Refresh(_ context.Context, _ string) (token.Token, error) {
	f.lock.Lock()
	f.RefreshCalls++
	barrier := f.RefreshBarrier
	f.lock.Unlock()

	if barrier != nil {
		<-barrier
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	if f.RefreshErr != nil {
		return token.Token{}, f.RefreshErr
	}
	return f.mintLocked("access", f.Now().Add(f.AccessTTL)), nil
}

func (f *FakeAuth) Revoke(_ context.Context, _ string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.RevokeCalls++
	return f.RevokeErr
}

func (f *FakeAuth) DeleteAccount(_ context.Context, _ string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.DeleteCalls++
	return f.DeleteErr
}

func (f *FakeAuth) mintLocked(kind string, expiresAt time.Time) token.Token {
	f.tokenSeq++
	return token.Token{
		Value:     fmt.Sprintf("%s-%d", kind, f.tokenSeq),
		ExpiresAt: expiresAt.Unix(),
	}
}
