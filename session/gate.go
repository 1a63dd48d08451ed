package session

import "context"

// Gate guards protected work behind a resolved, authenticated session.
// It is a consumer of the manager's state stream: it never touches
// storage or the network itself.
type Gate struct {
	manager *Manager
}

// NewGate creates a Gate over the given manager.
func NewGate(manager *Manager) *Gate {
	return &Gate{manager: manager}
}

// Wait blocks until the session state leaves Unresolved and returns
// the settled state.
func (g *Gate) Wait(ctx context.Context) (State, error) {
	states, cancel := g.manager.Subscribe()
	defer cancel()

	for {
		select {
		case state := <-states:
			if state.Status != StatusUnresolved {
				return state, nil
			}
		case <-ctx.Done():
			return State{}, ctx.Err()
		}
	}
}

// Require waits for resolution and yields the authenticated session,
// or ErrNotAuthenticated when the user is logged out. Callers use the
// error as their cue to redirect to login.
func (g *Gate) Require(ctx context.Context) (Session, error) {
	state, err := g.Wait(ctx)
	if err != nil {
		return Session{}, err
	}
	if state.Status != StatusAuthenticated {
		return Session{}, ErrNotAuthenticated
	}
	return *state.Session, nil
}
