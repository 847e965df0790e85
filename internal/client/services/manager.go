package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/clubportal/internal/client/assets"
	"github.com/dmitrijs2005/clubportal/internal/client/client"
	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/client/router"
	"github.com/dmitrijs2005/clubportal/internal/client/validation"
	"github.com/dmitrijs2005/clubportal/internal/logging"
)

// ManagerDashboard is everything the club manager view shows.
type ManagerDashboard struct {
	Club          models.Club
	Registrations []models.Registration
	// Candidates are users the club can be handed over to.
	Candidates []models.User
}

func (d ManagerDashboard) byStatus(st models.Status) []models.Registration {
	out := []models.Registration{}
	for _, r := range d.Registrations {
		if r.Status == st {
			out = append(out, r)
		}
	}
	return out
}

func (d ManagerDashboard) Pending() []models.Registration { return d.byStatus(models.StatusPending) }
func (d ManagerDashboard) Members() []models.Registration { return d.byStatus(models.StatusAccepted) }

// ClubEdit is the part of a club its manager may change.
type ClubEdit struct {
	Name        string
	Description string
	Category    string
}

type ManagerService interface {
	Load(ctx context.Context) (ManagerDashboard, error)
	Decide(ctx context.Context, club models.Club, reg models.Registration, status models.Status) error
	RemoveMember(ctx context.Context, club models.Club, studentID models.ID) error
	// Broadcast sends message to every accepted member and returns how many
	// were addressed.
	Broadcast(ctx context.Context, dash ManagerDashboard, message string) (int, error)
	AwardBadge(ctx context.Context, club models.Club, studentID models.ID, badge models.Badge) error
	// TransferManager hands the club over. The caller signs out afterwards:
	// the current identity no longer manages anything.
	TransferManager(ctx context.Context, club models.Club, newManagerID models.ID) error
	UpdateClub(ctx context.Context, club models.Club, edit ClubEdit, img *Image) (models.Club, error)
}

type managerService struct {
	gw   client.Gateway
	up   assets.Uploader
	sess Session
	log  logging.Logger
}

func NewManagerService(gw client.Gateway, up assets.Uploader, sess Session, log logging.Logger) ManagerService {
	if log == nil {
		log = logging.Nop()
	}
	return &managerService{gw: gw, up: up, sess: sess, log: log}
}

func (s *managerService) Load(ctx context.Context) (ManagerDashboard, error) {
	snap, err := requireView(s.sess, router.ViewClubManager)
	if err != nil {
		return ManagerDashboard{}, err
	}
	me := snap.Identity.ID

	ref, err := s.gw.ManagedClub(ctx, me)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return ManagerDashboard{}, ErrNoManagedClub
		}
		return ManagerDashboard{}, fmt.Errorf("find managed club: %w", err)
	}
	club, err := s.gw.GetClub(ctx, ref.ID)
	if err != nil {
		return ManagerDashboard{}, fmt.Errorf("load club %s: %w", ref.ID, err)
	}

	regs, err := s.gw.ClubRegistrations(ctx, club.ID)
	regs = orEmpty(ctx, s.log, "club registrations", regs, err)
	users, err := s.gw.ListUsers(ctx)
	users = orEmpty(ctx, s.log, "users", users, err)

	candidates := []models.User{}
	for _, u := range users {
		if u.ID != me && u.Role != models.RoleAdmin {
			candidates = append(candidates, u)
		}
	}
	return ManagerDashboard{Club: club, Registrations: regs, Candidates: candidates}, nil
}

func (s *managerService) Decide(ctx context.Context, club models.Club, reg models.Registration, status models.Status) error {
	if _, err := requireView(s.sess, router.ViewClubManager); err != nil {
		return err
	}
	if !router.CanDecide(reg) || !reg.Status.CanTransition(status) {
		return fmt.Errorf("%w: %s -> %s", ErrNotPending, reg.Status, status)
	}
	student := reg.StudentRef()
	if err := s.gw.UpdateRegistrationStatus(ctx, student, club.ID, status); err != nil {
		return fmt.Errorf("set registration status: %w", err)
	}

	n := models.NotificationInput{
		Type:        models.NotificationInfo,
		SenderID:    club.ID,
		ReceiverIDs: []models.ID{student},
		Message:     fmt.Sprintf("Your request to join %s was declined.", club.Name),
	}
	if status == models.StatusAccepted {
		n.Type = models.NotificationSuccess
		n.Message = fmt.Sprintf("Congratulations! You have been accepted into %s.", club.Name)
	}
	if err := s.gw.SendNotification(ctx, n); err != nil {
		// The decision itself is recorded; only the courtesy message failed.
		s.log.Warn(ctx, "decision notification not sent", "student_id", student, "error", err)
	}
	return nil
}

func (s *managerService) RemoveMember(ctx context.Context, club models.Club, studentID models.ID) error {
	if _, err := requireView(s.sess, router.ViewClubManager); err != nil {
		return err
	}
	if err := s.gw.DeleteRegistration(ctx, studentID, club.ID); err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}

func (s *managerService) Broadcast(ctx context.Context, dash ManagerDashboard, message string) (int, error) {
	snap, err := requireView(s.sess, router.ViewClubManager)
	if err != nil {
		return 0, err
	}
	if err := validation.Message(message); err != nil {
		return 0, err
	}
	var to []models.ID
	for _, r := range dash.Members() {
		to = append(to, r.StudentRef())
	}
	if err := validation.Recipients(len(to)); err != nil {
		return 0, err
	}
	err = s.gw.SendNotification(ctx, models.NotificationInput{
		Type:        models.NotificationInfo,
		SenderID:    snap.Identity.ID,
		ReceiverIDs: to,
		Message:     strings.TrimSpace(message),
	})
	if err != nil {
		return 0, fmt.Errorf("broadcast: %w", err)
	}
	return len(to), nil
}

func (s *managerService) AwardBadge(ctx context.Context, club models.Club, studentID models.ID, badge models.Badge) error {
	snap, err := requireView(s.sess, router.ViewClubManager)
	if err != nil {
		return err
	}
	if err := validation.Required("badge", badge.Name); err != nil {
		return err
	}
	err = s.gw.AwardBadge(ctx, studentID, models.BadgeBrief{
		Name:     badge.Name,
		Icon:     badge.Icon,
		ClubID:   club.ID,
		ClubName: club.Name,
	})
	if err != nil {
		return fmt.Errorf("award badge: %w", err)
	}
	err = s.gw.SendNotification(ctx, models.NotificationInput{
		Type:        models.NotificationSuccess,
		SenderID:    snap.Identity.ID,
		ReceiverIDs: []models.ID{studentID},
		Message:     fmt.Sprintf("Congratulations! You've been awarded the \"%s\" badge by %s.", badge.Name, club.Name),
	})
	if err != nil {
		s.log.Warn(ctx, "badge notification not sent", "student_id", studentID, "error", err)
	}
	return nil
}

func (s *managerService) TransferManager(ctx context.Context, club models.Club, newManagerID models.ID) error {
	snap, err := requireView(s.sess, router.ViewClubManager)
	if err != nil {
		return err
	}
	if err := validation.Required("manager", newManagerID.String()); err != nil {
		return err
	}
	if newManagerID == snap.Identity.ID {
		return &validation.Error{Field: "manager", Reason: "choose another user"}
	}
	if err := s.gw.TransferClub(ctx, club.ID, newManagerID); err != nil {
		return fmt.Errorf("transfer club: %w", err)
	}
	s.log.Info(ctx, "club transferred", "club_id", club.ID, "manager_id", newManagerID)
	return nil
}

func (s *managerService) UpdateClub(ctx context.Context, club models.Club, edit ClubEdit, img *Image) (models.Club, error) {
	if _, err := requireView(s.sess, router.ViewClubManager); err != nil {
		return models.Club{}, err
	}
	if err := validation.Required("name", edit.Name); err != nil {
		return models.Club{}, err
	}
	ref, err := uploadImage(ctx, s.up, img)
	if err != nil {
		return models.Club{}, err
	}
	updated, err := s.gw.UpdateClub(ctx, club.ID, models.ClubInput{
		Name:        edit.Name,
		Description: edit.Description,
		Category:    edit.Category,
		Image:       ref,
	})
	if err != nil {
		return models.Club{}, fmt.Errorf("update club: %w", err)
	}
	return updated, nil
}
