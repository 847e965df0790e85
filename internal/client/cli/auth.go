package cli

import (
	"context"

	"github.com/dmitrijs2005/clubportal/internal/client/session"
)

// Login prompts for credentials and signs in. The view switches on the next
// prompt once the session store has the identity.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	id, err := a.session.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.say("Welcome back, %s (%s)", id.Name, id.Role)
	return nil
}

// Signup registers a student account and signs it in.
func (a *App) Signup(ctx context.Context, _ []string) error {
	var in session.SignupInput
	var err error
	if in.Name, err = getSimpleText(a.reader, "Enter full name", a.out); err != nil {
		return err
	}
	if in.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if in.Password, err = getPassword("Enter password", a.out); err != nil {
		return err
	}
	if in.Confirm, err = getPassword("Confirm password", a.out); err != nil {
		return err
	}

	id, err := a.session.Signup(ctx, in)
	if err != nil {
		return err
	}
	a.say("Account created. Welcome, %s!", id.Name)
	return nil
}

// Logout ends the session. The poller is stopped by the session listener.
func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.session.Logout(ctx)
	a.assistant.Reset()
	a.say("Signed out.")
	return err
}
