package session

import (
	"errors"

	"github.com/DrewAMSD/lifting-log/api"
)

var (
	// ErrNotAuthenticated means a token-gated operation was called
	// while logged out. A precondition failure, not a server verdict.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired means the server authoritatively rejected the
	// session's refresh token, or the refresh token expired. The
	// session has been cleared; only a fresh login recovers.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidCredentials aliases the transport-level login
	// rejection so callers only need this package. The error text
	// carries the server's detail message.
	ErrInvalidCredentials = api.ErrInvalidCredentials
)
