package cli

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/client/services"
)

func (a *App) adminCommands() []command {
	cmds := []command{
		{name: "dashboard", help: "show portal statistics", run: a.AdminDashboard},
		{name: "clubs", help: "list clubs", run: a.adminList(func(d services.AdminDashboard) {
			for _, c := range d.Clubs {
				a.say("%s", formatClub(c))
			}
		})},
		{name: "activities", help: "list activities", run: a.adminList(func(d services.AdminDashboard) {
			a.printActivities(d.Activities)
		})},
		{name: "recent", help: "list recent activities", run: a.adminList(func(d services.AdminDashboard) {
			a.printActivities(d.Recent)
		})},
		{name: "archived", help: "list archived activities", run: a.adminList(func(d services.AdminDashboard) {
			a.printActivities(d.Archived)
		})},
		{name: "users", help: "list users", run: a.adminList(func(d services.AdminDashboard) {
			for _, u := range d.Users {
				a.say("%s", formatUser(u))
			}
		})},
		{name: "registrations", help: "list every registration", run: a.adminList(func(d services.AdminDashboard) {
			for _, r := range d.Registrations {
				a.say("club %s, %s", r.ClubID, formatRegistration(r))
			}
		})},
		{name: "newclub", usage: "newclub [image-path]", help: "create a club", run: a.NewClub},
		{name: "editclub", usage: "editclub <id> [image-path]", help: "edit a club", args: 1, run: a.AdminEditClub},
		{name: "delclub", usage: "delclub <id>", help: "delete a club", args: 1, run: func(ctx context.Context, args []string) error {
			return a.afterMutation(a.admin.DeleteClub(ctx, models.ID(args[0])), "Club deleted.")
		}},
		{name: "newactivity", usage: "newactivity [image-path]", help: "create an activity", run: a.NewActivity},
		{name: "editactivity", usage: "editactivity <id> [image-path]", help: "edit an activity", args: 1, run: a.EditActivity},
		{name: "delactivity", usage: "delactivity <id>", help: "delete an activity", args: 1, run: func(ctx context.Context, args []string) error {
			return a.afterMutation(a.admin.DeleteActivity(ctx, models.ID(args[0])), "Activity deleted.")
		}},
		{name: "broadcast", usage: "broadcast <info|alert|success> <everyone|user-id>", help: "send a notification", args: 2, run: a.AdminBroadcast},
	}
	cmds = append(cmds, a.inboxCommands()...)
	return append(cmds, command{name: "logout", help: "sign out", run: a.Logout})
}

func (a *App) adminList(show func(services.AdminDashboard)) func(context.Context, []string) error {
	return func(ctx context.Context, _ []string) error {
		d, err := a.admin.Dashboard(ctx)
		if err != nil {
			return err
		}
		show(d)
		return nil
	}
}

func (a *App) afterMutation(err error, done string) error {
	if err != nil {
		return err
	}
	a.say("%s", done)
	return nil
}

func (a *App) AdminDashboard(ctx context.Context, _ []string) error {
	d, err := a.admin.Dashboard(ctx)
	if err != nil {
		return err
	}
	st := d.Stats
	a.say("Students: %d  Clubs: %d  Activities: %d  Recent events: %d", st.Students, st.Clubs, st.Activities, st.RecentEvents)
	a.say("Registrations: %d (pending %d, accepted %d, rejected %d)", st.Registrations, st.Pending, st.Accepted, st.Rejected)

	cats := make([]string, 0, len(st.Categories))
	for c := range st.Categories {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		a.say("  %s: %d clubs", c, st.Categories[c])
	}
	a.say("Top clubs:")
	for i, c := range st.TopClubs {
		a.say("  %d. %s, %d members", i+1, c.Club.Name, c.Members)
	}
	return nil
}

func (a *App) promptClub(in models.ClubInput) (models.ClubInput, error) {
	var err error
	if in.Name, err = a.promptDefault("Name", in.Name); err != nil {
		return in, err
	}
	if in.Description, err = a.promptDefault("Description", in.Description); err != nil {
		return in, err
	}
	if in.Category, err = a.promptDefault("Category", in.Category); err != nil {
		return in, err
	}
	return in, nil
}

func (a *App) NewClub(ctx context.Context, args []string) error {
	img, closeFn, err := optionalImage(args)
	if err != nil {
		return err
	}
	defer closeFn()

	in, err := a.promptClub(models.ClubInput{})
	if err != nil {
		return err
	}
	manager, err := getSimpleText(a.reader, "Manager user id (empty for none)", a.out)
	if err != nil {
		return err
	}
	in.ManagerID = models.ID(manager)

	club, err := a.admin.CreateClub(ctx, in, img)
	if err != nil {
		return err
	}
	a.say("Created %s.", formatClub(club))
	return nil
}

func (a *App) AdminEditClub(ctx context.Context, args []string) error {
	img, closeFn, err := optionalImage(args[1:])
	if err != nil {
		return err
	}
	defer closeFn()

	id := models.ID(args[0])
	cur, err := a.catalog.Club(ctx, id)
	if err != nil {
		return err
	}
	in, err := a.promptClub(models.ClubInput{Name: cur.Name, Description: cur.Description, Category: cur.Category})
	if err != nil {
		return err
	}
	club, err := a.admin.UpdateClub(ctx, id, in, img)
	if err != nil {
		return err
	}
	a.say("Saved %s.", formatClub(club))
	return nil
}

func (a *App) promptActivity(in models.ActivityInput) (models.ActivityInput, error) {
	var err error
	if in.Title, err = a.promptDefault("Title", in.Title); err != nil {
		return in, err
	}
	if in.Description, err = a.promptDefault("Description", in.Description); err != nil {
		return in, err
	}
	if in.Date, err = a.promptDefault("Date (YYYY-MM-DD, empty for today)", in.Date); err != nil {
		return in, err
	}
	if in.Location, err = a.promptDefault("Location", in.Location); err != nil {
		return in, err
	}
	return in, nil
}

func (a *App) NewActivity(ctx context.Context, args []string) error {
	img, closeFn, err := optionalImage(args)
	if err != nil {
		return err
	}
	defer closeFn()

	in, err := a.promptActivity(models.ActivityInput{})
	if err != nil {
		return err
	}
	act, err := a.admin.CreateActivity(ctx, in, img)
	if err != nil {
		return err
	}
	a.say("Created %s.", formatActivity(act))
	return nil
}

func (a *App) EditActivity(ctx context.Context, args []string) error {
	img, closeFn, err := optionalImage(args[1:])
	if err != nil {
		return err
	}
	defer closeFn()

	id := models.ID(args[0])
	cur, err := a.catalog.Activity(ctx, id)
	if err != nil {
		return err
	}
	in, err := a.promptActivity(models.ActivityInput{
		Title: cur.Title, Description: cur.Description, Date: cur.Date, Location: cur.Location,
	})
	if err != nil {
		return err
	}
	return a.afterMutation(a.admin.UpdateActivity(ctx, id, in, img), "Activity saved.")
}

func (a *App) AdminBroadcast(ctx context.Context, args []string) error {
	msg, err := getMultiline(a.reader, "Message", a.out)
	if err != nil {
		return err
	}
	n, err := a.admin.Broadcast(ctx, models.NotificationType(args[0]), args[1], msg)
	if err != nil {
		return err
	}
	a.say("Notification sent to %d users.", n)
	return nil
}
