package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
)

func (a *App) guestCommands() []command {
	return append(a.catalogCommands(nil),
		command{name: "login", help: "sign in", run: a.Login},
		command{name: "signup", help: "create a student account", run: a.Signup},
		command{name: "ask", usage: "ask <question>", help: "ask the campus assistant", args: 1, run: a.Ask},
		command{name: "forget", help: "start a new conversation with the assistant", run: a.Forget},
	)
}

// catalogCommands are the read-only listing commands. status, when set,
// annotates each club with the caller's registration state.
func (a *App) catalogCommands(status func(models.ID) string) []command {
	return []command{
		{name: "clubs", help: "list clubs", run: func(ctx context.Context, _ []string) error {
			c := a.catalog.Catalog(ctx)
			if len(c.Clubs) == 0 {
				a.say("No clubs yet.")
			}
			for _, club := range c.Clubs {
				line := formatClub(club)
				if status != nil {
					line += "  " + status(club.ID)
				}
				a.say("%s", line)
			}
			return nil
		}},
		{name: "activities", help: "list activities", run: func(ctx context.Context, _ []string) error {
			a.printActivities(a.catalog.Catalog(ctx).Activities)
			return nil
		}},
		{name: "club", usage: "club <id>", help: "show one club", args: 1, run: func(ctx context.Context, args []string) error {
			club, err := a.catalog.Club(ctx, models.ID(args[0]))
			if err != nil {
				return err
			}
			a.say("%s\n%s", formatClub(club), club.Description)
			if status != nil {
				a.say("Your status: %s", status(club.ID))
			}
			return nil
		}},
		{name: "activity", usage: "activity <id>", help: "show one activity", args: 1, run: func(ctx context.Context, args []string) error {
			act, err := a.catalog.Activity(ctx, models.ID(args[0]))
			if err != nil {
				return err
			}
			a.say("%s\n%s", formatActivity(act), act.Description)
			return nil
		}},
	}
}

func (a *App) printActivities(acts []models.Activity) {
	if len(acts) == 0 {
		a.say("No activities.")
	}
	for _, act := range acts {
		a.say("%s", formatActivity(act))
	}
}

// Ask sends a question to the campus assistant with the current catalog as
// context.
func (a *App) Ask(ctx context.Context, args []string) error {
	c := a.catalog.Catalog(ctx)
	reply := a.assistant.Ask(ctx, strings.Join(args, " "), c.Clubs, c.Activities)
	a.say("assistant: %s", reply)
	return nil
}

func (a *App) Forget(_ context.Context, _ []string) error {
	a.assistant.Reset()
	a.say("assistant: %s", a.assistant.History()[0].Text)
	return nil
}
