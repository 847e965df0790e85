// Package common defines shared constants and sentinel errors used across
// clubportal packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrValidation marks a local, pre-flight validation failure. Such errors
	// are produced before any network call is attempted.
	ErrValidation = errors.New("validation error")

	// ErrForbidden is returned when a view or action is not permitted for
	// the current session.
	ErrForbidden = errors.New("forbidden")

	// ErrNoSession is returned by operations that require an identity.
	ErrNoSession = errors.New("no active session")

	ErrNotFound = errors.New("not found")
)
