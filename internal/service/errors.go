package service

import "errors"

// Error classes surfaced by the services. Handlers log the concrete cause and
// flatten all of these to a uniform failure body; tests branch with errors.Is.
var (
	// ErrSessionNotFound means the session id did not resolve to a row.
	ErrSessionNotFound = errors.New("session not found")
	// ErrUpstream covers the model gateway being unreachable, returning a
	// non-success status, or returning an unparseable payload.
	ErrUpstream = errors.New("model gateway error")
	// ErrPersistence covers store read/write failures.
	ErrPersistence = errors.New("persistence error")
)
