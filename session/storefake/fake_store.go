package storefake

import (
	"sync"

	"github.com/DrewAMSD/lifting-log/session"
)

var _ session.Store = (*FakeStore)(nil)

// FakeStore is an in-memory session.Store for tests. Errors can be
// forced per operation.
type FakeStore struct {
	lock sync.Mutex

	stored *session.Session

	LoadErr  error
	SaveErr  error
	ClearErr error

	SaveCalls  int
	ClearCalls int
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (f *FakeStore) Load() (*session.Session, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	if f.stored == nil {
		return nil, nil
	}
	sessionCopy := *f.stored
	return &sessionCopy, nil
}

func (f *FakeStore) Save(sess *session.Session) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.SaveCalls++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	sessionCopy := *sess
	f.stored = &sessionCopy
	return nil
}

func (f *FakeStore) Clear() error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.ClearCalls++
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.stored = nil
	return nil
}

// Stored returns a copy of what is currently persisted, or nil.
func (f *FakeStore) Stored() *session.Session {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.stored == nil {
		return nil
	}
	sessionCopy := *f.stored
	return &sessionCopy
}

// Seed pre-populates the store, as if a previous process had saved.
func (f *FakeStore) Seed(sess session.Session) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.stored = &sess
}
