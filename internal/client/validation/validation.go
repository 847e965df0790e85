// Package validation holds the local, pre-flight checks run before any
// request leaves the client.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/clubportal/internal/common"
)

// Error is a local validation failure. It matches common.ErrValidation.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *Error) Unwrap() error { return common.ErrValidation }

const (
	ReasonMissingFields = "Please fill in all fields"
	ReasonNameLetters   = "Name can only contain letters and spaces"
	ReasonNameShort     = "Name must be at least 2 characters long"
	ReasonEmail         = "Please enter a valid email address"
	ReasonPasswordMatch = "Passwords do not match"
	ReasonEmptyMessage  = "Please enter a message."
	ReasonNoRecipients  = "No recipients found for the selected category."
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Signup checks a registration form. The first failing rule wins.
func Signup(name, email, password, confirm string) error {
	if name == "" || email == "" || password == "" {
		return &Error{Field: "form", Reason: ReasonMissingFields}
	}
	if !nameRe.MatchString(name) {
		return &Error{Field: "name", Reason: ReasonNameLetters}
	}
	if len(strings.TrimSpace(name)) < 2 {
		return &Error{Field: "name", Reason: ReasonNameShort}
	}
	if !emailRe.MatchString(email) {
		return &Error{Field: "email", Reason: ReasonEmail}
	}
	if password != confirm {
		return &Error{Field: "password", Reason: ReasonPasswordMatch}
	}
	return nil
}

func Login(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return &Error{Field: "form", Reason: ReasonMissingFields}
	}
	return nil
}

// Required fails when value is blank.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &Error{Field: field, Reason: field + " is required"}
	}
	return nil
}

// Message rejects a blank broadcast body.
func Message(msg string) error {
	if strings.TrimSpace(msg) == "" {
		return &Error{Field: "message", Reason: ReasonEmptyMessage}
	}
	return nil
}

// Recipients rejects a broadcast that would reach nobody.
func Recipients(n int) error {
	if n == 0 {
		return &Error{Field: "recipients", Reason: ReasonNoRecipients}
	}
	return nil
}
