package core

import "errors"

// Sentinel errors shared across features. Handlers map these to HTTP
// status codes in one place so every feature reports failures the same
// way.
var (
	// ErrUnauthenticated means no caller identity could be resolved.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrNotFound covers both a missing row and a row owned by another
	// user; the two are indistinguishable to the caller.
	ErrNotFound = errors.New("not found")

	// ErrOwnerMismatch means the declared owner of a request does not
	// match the authenticated caller.
	ErrOwnerMismatch = errors.New("owner mismatch")

	// ErrInvalidState means a required prior state does not hold, e.g.
	// publishing a run that has not succeeded.
	ErrInvalidState = errors.New("invalid state")

	// ErrValidation means the request payload failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable means a required subsystem is not configured or
	// not reachable.
	ErrUnavailable = errors.New("unavailable")
)
