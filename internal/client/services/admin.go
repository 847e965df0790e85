package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dmitrijs2005/clubportal/internal/client/assets"
	"github.com/dmitrijs2005/clubportal/internal/client/client"
	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/client/router"
	"github.com/dmitrijs2005/clubportal/internal/client/validation"
	"github.com/dmitrijs2005/clubportal/internal/logging"
)

const (
	// Everyone addresses every non-admin user in an admin broadcast.
	Everyone        = "everyone"
	DefaultLocation = "ENSA KHOURIBGA"
	topClubsLimit   = 3
)

type ClubMembers struct {
	Club    models.Club
	Members int
}

// Stats are the admin overview counters.
type Stats struct {
	Students      int
	Clubs         int
	Activities    int
	Registrations int
	Pending       int
	Accepted      int
	Rejected      int
	Categories    map[string]int
	TopClubs      []ClubMembers
	RecentEvents  int
}

type AdminDashboard struct {
	Clubs         []models.Club
	Activities    []models.Activity
	Users         []models.User
	Registrations []models.Registration
	Recent        []models.Activity
	Archived      []models.Activity
	Stats         Stats
}

// ComputeStats derives the overview counters from the loaded collections.
func ComputeStats(d AdminDashboard) Stats {
	st := Stats{
		Clubs:         len(d.Clubs),
		Activities:    len(d.Activities),
		Registrations: len(d.Registrations),
		RecentEvents:  len(d.Recent),
		Categories:    map[string]int{},
	}
	for _, u := range d.Users {
		if u.Role == models.RoleStudent {
			st.Students++
		}
	}
	members := map[models.ID]int{}
	for _, r := range d.Registrations {
		switch r.Status {
		case models.StatusPending:
			st.Pending++
		case models.StatusAccepted:
			st.Accepted++
			members[r.ClubID]++
		case models.StatusRejected:
			st.Rejected++
		}
	}
	top := make([]ClubMembers, 0, len(d.Clubs))
	for _, c := range d.Clubs {
		cat := c.Category
		if cat == "" {
			cat = "General"
		}
		st.Categories[cat]++
		top = append(top, ClubMembers{Club: c, Members: members[c.ID]})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Members > top[j].Members })
	if len(top) > topClubsLimit {
		top = top[:topClubsLimit]
	}
	st.TopClubs = top
	return st
}

type AdminService interface {
	// Dashboard loads every collection; unreachable ones come back empty.
	Dashboard(ctx context.Context) (AdminDashboard, error)
	CreateClub(ctx context.Context, in models.ClubInput, img *Image) (models.Club, error)
	UpdateClub(ctx context.Context, id models.ID, in models.ClubInput, img *Image) (models.Club, error)
	DeleteClub(ctx context.Context, id models.ID) error
	CreateActivity(ctx context.Context, in models.ActivityInput, img *Image) (models.Activity, error)
	UpdateActivity(ctx context.Context, id models.ID, in models.ActivityInput, img *Image) error
	DeleteActivity(ctx context.Context, id models.ID) error
	// Broadcast sends message to recipient, either Everyone or one user id,
	// and returns how many users were addressed.
	Broadcast(ctx context.Context, typ models.NotificationType, recipient, message string) (int, error)
}

type adminService struct {
	gw    client.Gateway
	up    assets.Uploader
	sess  Session
	log   logging.Logger
	clock clockwork.Clock
}

type AdminOption func(*adminService)

func WithAdminClock(c clockwork.Clock) AdminOption {
	return func(s *adminService) { s.clock = c }
}

func NewAdminService(gw client.Gateway, up assets.Uploader, sess Session, log logging.Logger, opts ...AdminOption) AdminService {
	if log == nil {
		log = logging.Nop()
	}
	s := &adminService{gw: gw, up: up, sess: sess, log: log, clock: clockwork.NewRealClock()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *adminService) Dashboard(ctx context.Context) (AdminDashboard, error) {
	if _, err := requireView(s.sess, router.ViewAdmin); err != nil {
		return AdminDashboard{}, err
	}
	var d AdminDashboard
	clubs, err := s.gw.ListClubs(ctx)
	d.Clubs = orEmpty(ctx, s.log, "clubs", clubs, err)
	acts, err := s.gw.ListActivities(ctx)
	d.Activities = orEmpty(ctx, s.log, "activities", acts, err)
	users, err := s.gw.ListUsers(ctx)
	d.Users = orEmpty(ctx, s.log, "users", users, err)
	regs, err := s.gw.AllRegistrations(ctx)
	d.Registrations = orEmpty(ctx, s.log, "registrations", regs, err)
	recent, err := s.gw.RecentActivities(ctx)
	d.Recent = orEmpty(ctx, s.log, "recent activities", recent, err)
	archived, err := s.gw.ArchivedActivities(ctx)
	d.Archived = orEmpty(ctx, s.log, "archived activities", archived, err)
	d.Stats = ComputeStats(d)
	return d, nil
}

func (s *adminService) CreateClub(ctx context.Context, in models.ClubInput, img *Image) (models.Club, error) {
	if _, err := requireView(s.sess, router.ViewAdmin); err != nil {
		return models.Club{}, err
	}
	if err := validation.Required("name", in.Name); err != nil {
		return models.Club{}, err
	}
	ref, err := uploadImage(ctx, s.up, img)
	if err != nil {
		return models.Club{}, err
	}
	if ref != "" {
		in.Image = ref
	}
	club, err := s.gw.CreateClub(ctx, in)
	if err != nil {
		return models.Club{}, fmt.Errorf("create club: %w", err)
	}
	s.log.Info(ctx, "club created", "club_id", club.ID)
	return club, nil
}

func (s *adminService) UpdateClub(ctx context.Context, id models.ID, in models.ClubInput, img *Image) (models.Club, error) {
	if _, err := requireView(s.sess, router.ViewAdmin); err != nil {
		return models.Club{}, err
	}
	if err := validation.Required("name", in.Name); err != nil {
		return models.Club{}, err
	}
	ref, err := uploadImage(ctx, s.up, img)
	if err != nil {
		return models.Club{}, err
	}
	if ref != "" {
		in.Image = ref
	}
	// Management changes go through a transfer, never an edit.
	in.ManagerID = ""
	club, err := s.gw.UpdateClub(ctx, id, in)
	if err != nil {
		return models.Club{}, fmt.Errorf("update club: %w", err)
	}
	return club, nil
}

func (s *adminService) DeleteClub(ctx context.Context, id models.ID) error {
	if _, err := requireView(s.sess, router.ViewAdmin); err != nil {
		return err
	}
	if err := s.gw.DeleteClub(ctx, id); err != nil {
		return fmt.Errorf("delete club: %w", err)
	}
	return nil
}

func (s *adminService) activityDefaults(in models.ActivityInput) models.ActivityInput {
	if strings.TrimSpace(in.Date) == "" {
		in.Date = s.clock.Now().Format(time.DateOnly)
	}
	if strings.TrimSpace(in.Location) == "" {
		in.Location = DefaultLocation
	}
	return in
}

func (s *adminService) CreateActivity(ctx context.Context, in models.ActivityInput, img *Image) (models.Activity, error) {
	if _, err := requireView(s.sess, router.ViewAdmin); err != nil {
		return models.Activity{}, err
	}
	if err := validation.Required("title", in.Title); err != nil {
		return models.Activity{}, err
	}
	ref, err := uploadImage(ctx, s.up, img)
	if err != nil {
		return models.Activity{}, err
	}
	if ref != "" {
		in.Image = ref
	}
	act, err := s.gw.CreateActivity(ctx, s.activityDefaults(in))
	if err != nil {
		return models.Activity{}, fmt.Errorf("create activity: %w", err)
	}
	s.log.Info(ctx, "activity created", "activity_id", act.ID)
	return act, nil
}

func (s *adminService) UpdateActivity(ctx context.Context, id models.ID, in models.ActivityInput, img *Image) error {
	if _, err := requireView(s.sess, router.ViewAdmin); err != nil {
		return err
	}
	if err := validation.Required("title", in.Title); err != nil {
		return err
	}
	ref, err := uploadImage(ctx, s.up, img)
	if err != nil {
		return err
	}
	if ref != "" {
		in.Image = ref
	}
	if err := s.gw.UpdateActivity(ctx, id, s.activityDefaults(in)); err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	return nil
}

func (s *adminService) DeleteActivity(ctx context.Context, id models.ID) error {
	if _, err := requireView(s.sess, router.ViewAdmin); err != nil {
		return err
	}
	if err := s.gw.DeleteActivity(ctx, id); err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}

func (s *adminService) Broadcast(ctx context.Context, typ models.NotificationType, recipient, message string) (int, error) {
	snap, err := requireView(s.sess, router.ViewAdmin)
	if err != nil {
		return 0, err
	}
	if !typ.Valid() {
		return 0, &validation.Error{Field: "type", Reason: fmt.Sprintf("unknown notification type %q", typ)}
	}
	if err := validation.Message(message); err != nil {
		return 0, err
	}

	var to []models.ID
	switch recipient = strings.TrimSpace(recipient); recipient {
	case Everyone:
		users, err := s.gw.ListUsers(ctx)
		if err != nil {
			return 0, fmt.Errorf("broadcast: list users: %w", err)
		}
		for _, u := range users {
			if u.Role != models.RoleAdmin {
				to = append(to, u.ID)
			}
		}
	case "":
	default:
		to = []models.ID{models.ID(recipient)}
	}
	if err := validation.Recipients(len(to)); err != nil {
		return 0, err
	}

	err = s.gw.SendNotification(ctx, models.NotificationInput{
		Type:        typ,
		SenderID:    snap.Identity.ID,
		ReceiverIDs: to,
		Message:     strings.TrimSpace(message),
	})
	if err != nil {
		return 0, fmt.Errorf("broadcast: %w", err)
	}
	return len(to), nil
}
