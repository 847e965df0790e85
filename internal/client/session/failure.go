package session

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/clubportal/internal/client/client"
	"github.com/dmitrijs2005/clubportal/internal/client/validation"
)

const (
	ReasonConnection      = "Server connection failed"
	ReasonUnauthorized    = "Unauthorized"
	ReasonUnexpected      = "Unexpected server response"
	ReasonSignupFailed    = "Registration failed"
	ReasonLocalStoreError = "Could not save session on this device"
)

// Failure is returned by Login, Signup and Logout. Reason is safe to show to
// the user; Err keeps the underlying cause.
type Failure struct {
	Op     string
	Reason string
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Op, f.Reason)
}

func (f *Failure) Unwrap() error { return f.Err }

func newFailure(op string, err error) *Failure {
	return &Failure{Op: op, Reason: reasonFor(op, err), Err: err}
}

func reasonFor(op string, err error) string {
	var ve *validation.Error
	if errors.As(err, &ve) {
		return ve.Reason
	}
	var ge *client.Error
	if !errors.As(err, &ge) {
		return ReasonLocalStoreError
	}
	switch ge.Kind {
	case client.KindTransport:
		return ReasonConnection
	case client.KindMalformed:
		return ReasonUnexpected
	}
	if op == "signup" {
		return client.UserMessage(err, ReasonSignupFailed)
	}
	return client.UserMessage(err, ReasonUnauthorized)
}

// Reason extracts the user-facing reason from err, or "" when err is not a
// session failure.
func Reason(err error) string {
	var f *Failure
	if errors.As(err, &f) {
		return f.Reason
	}
	return ""
}
