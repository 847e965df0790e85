package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/client/services"
	"github.com/dmitrijs2005/clubportal/internal/client/validation"
)

func (a *App) managerCommands() []command {
	cmds := []command{
		{name: "dashboard", help: "show your club and its requests", run: a.ManagerDashboard},
		{name: "pending", help: "list pending requests", run: a.listRegs(models.StatusPending)},
		{name: "members", help: "list accepted members", run: a.listRegs(models.StatusAccepted)},
		{name: "accept", usage: "accept <student-id>", help: "accept a pending request", args: 1, run: a.decide(models.StatusAccepted)},
		{name: "reject", usage: "reject <student-id>", help: "decline a pending request", args: 1, run: a.decide(models.StatusRejected)},
		{name: "remove", usage: "remove <student-id>", help: "remove a member", args: 1, run: a.RemoveMember},
		{name: "broadcast", help: "message every member", run: a.ManagerBroadcast},
		{name: "badges", help: "list the badges you can award", run: a.Badges},
		{name: "award", usage: "award <student-id> <badge-no>", help: "award a badge to a member", args: 2, run: a.Award},
		{name: "candidates", help: "list users the club can be handed over to", run: a.Candidates},
		{name: "transfer", usage: "transfer <user-id>", help: "hand the club over and sign out", args: 1, run: a.Transfer},
		{name: "edit", usage: "edit [image-path]", help: "edit club details", run: a.EditClub},
	}
	cmds = append(cmds, a.inboxCommands()...)
	return append(cmds, command{name: "logout", help: "sign out", run: a.Logout})
}

func (a *App) ManagerDashboard(ctx context.Context, _ []string) error {
	d, err := a.manager.Load(ctx)
	if err != nil {
		return err
	}
	a.say("%s\n%s", formatClub(d.Club), d.Club.Description)
	a.say("Members: %d, pending requests: %d", len(d.Members()), len(d.Pending()))
	return nil
}

func (a *App) listRegs(st models.Status) func(context.Context, []string) error {
	return func(ctx context.Context, _ []string) error {
		d, err := a.manager.Load(ctx)
		if err != nil {
			return err
		}
		regs := d.Pending()
		if st == models.StatusAccepted {
			regs = d.Members()
		}
		if len(regs) == 0 {
			a.say("Nothing here.")
		}
		for _, r := range regs {
			a.say("%s", formatRegistration(r))
		}
		return nil
	}
}

func findRegistration(d services.ManagerDashboard, studentID models.ID) (models.Registration, error) {
	for _, r := range d.Registrations {
		if r.StudentRef() == studentID {
			return r, nil
		}
	}
	return models.Registration{}, fmt.Errorf("no registration for student %s in %s", studentID, d.Club.Name)
}

func (a *App) decide(st models.Status) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		d, err := a.manager.Load(ctx)
		if err != nil {
			return err
		}
		reg, err := findRegistration(d, models.ID(args[0]))
		if err != nil {
			return err
		}
		if err := a.manager.Decide(ctx, d.Club, reg, st); err != nil {
			return err
		}
		a.say("Request %s.", st)
		return nil
	}
}

func (a *App) RemoveMember(ctx context.Context, args []string) error {
	d, err := a.manager.Load(ctx)
	if err != nil {
		return err
	}
	if err := a.manager.RemoveMember(ctx, d.Club, models.ID(args[0])); err != nil {
		return err
	}
	a.say("Member removed.")
	return nil
}

func (a *App) ManagerBroadcast(ctx context.Context, _ []string) error {
	d, err := a.manager.Load(ctx)
	if err != nil {
		return err
	}
	msg, err := getMultiline(a.reader, "Message to all members", a.out)
	if err != nil {
		return err
	}
	n, err := a.manager.Broadcast(ctx, d, msg)
	if err != nil {
		return err
	}
	a.say("Message sent to %d members.", n)
	return nil
}

func (a *App) Badges(_ context.Context, _ []string) error {
	for i, b := range models.BadgeCatalog {
		a.say("%d. %s %s", i+1, b.Icon, b.Name)
	}
	return nil
}

func (a *App) Award(ctx context.Context, args []string) error {
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 || n > len(models.BadgeCatalog) {
		return &validation.Error{Field: "badge", Reason: fmt.Sprintf("pick a badge between 1 and %d", len(models.BadgeCatalog))}
	}
	d, err := a.manager.Load(ctx)
	if err != nil {
		return err
	}
	badge := models.BadgeCatalog[n-1]
	if err := a.manager.AwardBadge(ctx, d.Club, models.ID(args[0]), badge); err != nil {
		return err
	}
	a.say("Awarded %s %s.", badge.Icon, badge.Name)
	return nil
}

func (a *App) Candidates(ctx context.Context, _ []string) error {
	d, err := a.manager.Load(ctx)
	if err != nil {
		return err
	}
	for _, u := range d.Candidates {
		a.say("%s", formatUser(u))
	}
	return nil
}

func (a *App) Transfer(ctx context.Context, args []string) error {
	d, err := a.manager.Load(ctx)
	if err != nil {
		return err
	}
	if err := a.manager.TransferManager(ctx, d.Club, models.ID(args[0])); err != nil {
		return err
	}
	a.say("%s now has a new manager.", d.Club.Name)
	return a.Logout(ctx, nil)
}

func (a *App) EditClub(ctx context.Context, args []string) error {
	img, closeFn, err := optionalImage(args)
	if err != nil {
		return err
	}
	defer closeFn()

	d, err := a.manager.Load(ctx)
	if err != nil {
		return err
	}
	edit := services.ClubEdit{Name: d.Club.Name, Description: d.Club.Description, Category: d.Club.Category}
	if edit.Name, err = a.promptDefault("Name", edit.Name); err != nil {
		return err
	}
	if edit.Description, err = a.promptDefault("Description", edit.Description); err != nil {
		return err
	}
	if edit.Category, err = a.promptDefault("Category", edit.Category); err != nil {
		return err
	}

	club, err := a.manager.UpdateClub(ctx, d.Club, edit, img)
	if err != nil {
		return err
	}
	a.say("Saved %s.", formatClub(club))
	return nil
}

// promptDefault asks for a value; an empty answer keeps current.
func (a *App) promptDefault(label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}
