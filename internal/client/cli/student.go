package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/client/router"
)

// studentCommands depend on the active tab: joining happens on Home, profile
// edits on Profile.
func (a *App) studentCommands() []command {
	cmds := []command{
		{name: "home", help: "switch to the home tab", run: a.Home},
		{name: "profile", help: "switch to the profile tab and show it", run: a.ShowProfile},
		{name: "tab", help: "toggle between home and profile", run: func(ctx context.Context, _ []string) error {
			if a.currentTab().Toggle() == router.TabProfile {
				return a.ShowProfile(ctx, nil)
			}
			return a.Home(ctx, nil)
		}},
	}
	home := append(a.catalogCommands(a.clubStatus),
		command{name: "join", usage: "join <club-id>", help: "ask to join a club", args: 1, run: a.Join},
		command{name: "mine", help: "list your registrations", run: a.Mine},
	)
	profile := []command{
		{name: "bio", help: "edit your bio", run: a.EditBio},
		{name: "avatar", usage: "avatar <image-path>", help: "upload a new avatar", args: 1, run: a.Avatar},
	}
	if a.currentTab() == router.TabHome {
		cmds = append(cmds, home...)
		cmds = append(cmds, otherTab(profile, router.TabProfile)...)
	} else {
		cmds = append(cmds, profile...)
		cmds = append(cmds, otherTab(home, router.TabHome)...)
	}
	cmds = append(cmds, a.inboxCommands()...)
	return append(cmds,
		command{name: "ask", usage: "ask <question>", help: "ask the campus assistant", args: 1, run: a.Ask},
		command{name: "forget", help: "start a new conversation with the assistant", run: a.Forget},
		command{name: "logout", help: "sign out", run: a.Logout},
	)
}

// otherTab turns cmds into hidden stubs that point the user at tab.
func otherTab(cmds []command, tab router.StudentTab) []command {
	out := make([]command, len(cmds))
	for i, c := range cmds {
		out[i] = command{name: c.name, hidden: true, run: func(context.Context, []string) error {
			printlnFn(fmt.Sprintf("%q is on the %s tab; type %q first", c.name, tab, tab.String()))
			return nil
		}}
	}
	return out
}

func (a *App) clubStatus(id models.ID) string {
	if st, ok := a.student.Status(id); ok {
		return string(st)
	}
	if a.student.CanJoin(id) {
		return "join with: join " + id.String()
	}
	return ""
}

func (a *App) Home(ctx context.Context, _ []string) error {
	a.setTab(router.TabHome)
	c := a.catalog.Catalog(ctx)
	a.say("Clubs:")
	for _, club := range c.Clubs {
		a.say("  %s  %s", formatClub(club), a.clubStatus(club.ID))
	}
	a.say("Upcoming activities:")
	a.printActivities(c.Activities)
	return nil
}

func (a *App) Join(ctx context.Context, args []string) error {
	reg, err := a.student.Join(ctx, models.ID(args[0]))
	if err != nil {
		return err
	}
	a.say("Request sent, status: %s", reg.Status)
	return nil
}

func (a *App) Mine(_ context.Context, _ []string) error {
	regs := a.student.Registrations()
	if len(regs) == 0 {
		a.say("No registrations yet.")
	}
	for _, r := range regs {
		a.say("club %s: %s", r.ClubID, r.Status)
	}
	return nil
}

func (a *App) ShowProfile(ctx context.Context, _ []string) error {
	a.setTab(router.TabProfile)
	p, err := a.profile.Load(ctx)
	if err != nil {
		return err
	}
	a.say("%s <%s>", p.Identity.Name, p.Identity.Email)
	if p.Identity.Bio != "" {
		a.say("%s", p.Identity.Bio)
	}
	if p.Identity.Avatar != "" {
		a.say("Avatar: %s", p.Identity.Avatar)
	}
	names := make([]string, 0, len(p.Clubs))
	for _, c := range p.Clubs {
		names = append(names, c.Name)
	}
	a.say("Clubs: %s", orNone(strings.Join(names, ", ")))
	for _, b := range p.Badges {
		a.say("  %s %s (%s)", b.Icon, b.Name, b.ClubName)
	}
	return nil
}

func (a *App) EditBio(ctx context.Context, _ []string) error {
	bio, err := getMultiline(a.reader, "Enter your bio", a.out)
	if err != nil {
		return err
	}
	if _, err := a.profile.UpdateBio(ctx, bio); err != nil {
		return err
	}
	a.say("Bio updated.")
	return nil
}

func (a *App) Avatar(ctx context.Context, args []string) error {
	img, closeFn, err := openImage(args[0])
	if err != nil {
		return err
	}
	defer closeFn()
	id, err := a.profile.UpdateAvatar(ctx, *img)
	if err != nil {
		return err
	}
	a.say("Avatar updated: %s", id.Avatar)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
