package cli

import (
	"errors"

	"github.com/dmitrijs2005/clubportal/internal/client/client"
	"github.com/dmitrijs2005/clubportal/internal/client/services"
	"github.com/dmitrijs2005/clubportal/internal/client/session"
	"github.com/dmitrijs2005/clubportal/internal/client/validation"
	"github.com/dmitrijs2005/clubportal/internal/common"
)

const (
	msgNoSession     = "Please sign in first."
	msgForbidden     = "That action is not available to you."
	msgRejected      = "The server rejected the request."
	msgNoClub        = "You do not manage any club. Contact Admin."
	msgAlreadyJoined = "You already have a request for this club."
)

// describe turns err into the line shown to the user.
func describe(err error) string {
	if r := session.Reason(err); r != "" {
		return r
	}
	var ve *validation.Error
	if errors.As(err, &ve) {
		return ve.Reason
	}
	switch {
	case errors.Is(err, services.ErrNoManagedClub):
		return msgNoClub
	case errors.Is(err, services.ErrAlreadyRegistered):
		return msgAlreadyJoined
	case errors.Is(err, common.ErrNoSession):
		return msgNoSession
	case errors.Is(err, common.ErrForbidden):
		return msgForbidden
	case errors.Is(err, client.ErrTransport):
		return session.ReasonConnection
	case errors.Is(err, client.ErrMalformed):
		return session.ReasonUnexpected
	case errors.Is(err, client.ErrRejected):
		return client.UserMessage(err, msgRejected)
	}
	return err.Error()
}

func (a *App) report(err error) {
	printlnFn("Error:", describe(err))
}
