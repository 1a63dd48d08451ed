package session

import "github.com/DrewAMSD/lifting-log/token"

// Status is the externally observable authentication state. Exactly
// one holds at any instant.
type Status int

const (
	// StatusUnresolved holds only before the first resolution
	// completes, while stored credentials are still being checked.
	StatusUnresolved Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUnresolved:
		return "unresolved"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Identity is who the session belongs to. Derived from the access
// token's subject claim at login time and never re-derived.
type Identity struct {
	Username string `json:"username"`
}

// Session is the in-memory record of a logged-in identity and its
// token pair. Both tokens are always structurally present, possibly
// expired; a session with a missing token is not representable.
type Session struct {
	Identity     Identity    `json:"identity"`
	AccessToken  token.Token `json:"access_token"`
	RefreshToken token.Token `json:"refresh_token"`
}

// State pairs a status with the session it describes. Session is
// non-nil exactly when Status is StatusAuthenticated, and is a copy:
// the manager's own session is never handed out.
type State struct {
	Status  Status
	Session *Session
}
