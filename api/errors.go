package api

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is an authoritative login rejection. The
	// wrapped message carries the server's detail text for display.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRefreshTokenInvalid is an authoritative refresh rejection: the
	// server no longer knows the refresh token. Holders of the session
	// must drop it; only a fresh login recovers.
	ErrRefreshTokenInvalid = errors.New("refresh token unknown or revoked")
)

// TransientError marks a failure that says nothing about the
// credentials themselves: the network dropped, the server hiccuped.
// Prior session state must survive it and the call is safe to retry.
type TransientError struct {
	Cause error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient: %v", e.Cause)
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}

// IsTransient reports whether err, or anything it wraps, is a
// TransientError.
func IsTransient(err error) bool {
	var transientErr *TransientError
	return errors.As(err, &transientErr)
}

// StatusError is a non-2xx reply together with the server's error
// envelope.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Detail)
}
