package cli

import (
	"context"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
)

func (a *App) inboxCommands() []command {
	return []command{
		{name: "inbox", help: "show your notifications", run: a.Inbox},
		{name: "dismiss", usage: "dismiss <id>", help: "delete a notification", args: 1, run: a.Dismiss},
	}
}

func (a *App) Inbox(ctx context.Context, _ []string) error {
	entries, err := a.inbox.Load(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		a.say("No notifications.")
	}
	for _, e := range entries {
		a.say("%s", formatEntry(e))
	}
	return nil
}

func (a *App) Dismiss(ctx context.Context, args []string) error {
	if err := a.inbox.Dismiss(ctx, models.ID(args[0])); err != nil {
		return err
	}
	a.say("Notification removed, %d left.", len(a.inbox.Entries()))
	return nil
}
