package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport: no response was received (dial, timeout, reset).
	ErrTransport = errors.New("transport failure")
	// ErrRejected: the server answered with a failure status or error body.
	ErrRejected = errors.New("request rejected")
	// ErrMalformed: the response body did not have the expected shape.
	ErrMalformed = errors.New("malformed response")

	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")

	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)

// Kind classifies a gateway failure.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindRejected
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRejected:
		return "rejected"
	case KindMalformed:
		return "malformed"
	}
	return "unknown"
}

// Error is the structured failure returned by every gateway call.
// Match it with errors.Is against ErrTransport, ErrRejected, ErrMalformed,
// ErrUnauthorized or ErrNotFound; use errors.As to read Message.
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindRejected && e.Message != "":
		return fmt.Sprintf("%s: %s (status %d): %s", e.Op, e.Kind, e.Status, e.Message)
	case e.Kind == KindRejected:
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrRejected:
		return e.Kind == KindRejected
	case ErrMalformed:
		return e.Kind == KindMalformed
	case ErrUnauthorized:
		return e.Kind == KindRejected && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
	case ErrNotFound:
		return e.Kind == KindRejected && e.Status == http.StatusNotFound
	}
	return false
}

// ServerMessage extracts the server-supplied message of a rejected request.
func ServerMessage(err error) (string, bool) {
	var ge *Error
	if errors.As(err, &ge) && ge.Kind == KindRejected && ge.Message != "" {
		return ge.Message, true
	}
	return "", false
}

// UserMessage returns the text to show for err: the server message when
// present, otherwise fallback.
func UserMessage(err error, fallback string) string {
	if msg, ok := ServerMessage(err); ok {
		return msg
	}
	return fallback
}
