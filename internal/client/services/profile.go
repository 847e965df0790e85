package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/clubportal/internal/client/client"
	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/logging"
	"github.com/dmitrijs2005/clubportal/internal/netx"
)

// Profile is the student profile page: who they are, the clubs that
// accepted them, and the badges they earned.
type Profile struct {
	Identity models.Identity
	Clubs    []models.Club
	Badges   []models.Badge
}

type ProfileService interface {
	Load(ctx context.Context) (Profile, error)
	UpdateBio(ctx context.Context, bio string) (models.Identity, error)
	UpdateAvatar(ctx context.Context, img Image) (models.Identity, error)
}

type profileService struct {
	gw   client.Gateway
	sess Session
	log  logging.Logger
}

func NewProfileService(gw client.Gateway, sess Session, log logging.Logger) ProfileService {
	if log == nil {
		log = logging.Nop()
	}
	return &profileService{gw: gw, sess: sess, log: log}
}

func (s *profileService) Load(ctx context.Context) (Profile, error) {
	snap, err := requireUser(s.sess)
	if err != nil {
		return Profile{}, err
	}
	me := *snap.Identity

	clubs, err := s.gw.ListClubs(ctx)
	clubs = orEmpty(ctx, s.log, "clubs", clubs, err)
	regs, err := s.gw.StudentRegistrations(ctx, me.ID)
	regs = orEmpty(ctx, s.log, "registrations", regs, err)
	badges, err := s.gw.Badges(ctx, me.ID)
	badges = orEmpty(ctx, s.log, "badges", badges, err)

	accepted := make(map[models.ID]struct{}, len(regs))
	for _, r := range regs {
		if r.Status == models.StatusAccepted {
			accepted[r.ClubID] = struct{}{}
		}
	}
	joined := []models.Club{}
	for _, c := range clubs {
		if _, ok := accepted[c.ID]; ok {
			joined = append(joined, c)
		}
	}
	return Profile{Identity: me, Clubs: joined, Badges: badges}, nil
}

func (s *profileService) UpdateBio(ctx context.Context, bio string) (models.Identity, error) {
	snap, err := requireUser(s.sess)
	if err != nil {
		return models.Identity{}, err
	}
	in := models.ProfileInput{Name: snap.Identity.Name, Bio: bio}
	if err := s.gw.UpdateProfile(ctx, snap.Identity.ID, in); err != nil {
		return models.Identity{}, fmt.Errorf("update bio: %w", err)
	}
	return s.apply(snap.Generation, models.IdentityPatch{Bio: &bio})
}

func (s *profileService) UpdateAvatar(ctx context.Context, img Image) (models.Identity, error) {
	snap, err := requireUser(s.sess)
	if err != nil {
		return models.Identity{}, err
	}
	if img.Content == nil {
		return models.Identity{}, errors.New("update avatar: no file selected")
	}
	ref, err := s.gw.UpdateAvatar(ctx, snap.Identity.ID, netx.FilePart{
		Field:    "avatar",
		FileName: img.Name,
		Content:  img.Content,
	})
	if err != nil {
		return models.Identity{}, fmt.Errorf("update avatar: %w", err)
	}
	if ref == "" {
		// The backend did not echo the stored reference; read it back.
		fresh, err := s.gw.GetUser(ctx, snap.Identity.ID)
		if err != nil {
			return models.Identity{}, fmt.Errorf("update avatar: reload user: %w", err)
		}
		ref = fresh.Avatar
	}
	return s.apply(snap.Generation, models.IdentityPatch{Avatar: &ref})
}

func (s *profileService) apply(gen uint64, p models.IdentityPatch) (models.Identity, error) {
	if !s.sess.Current(gen) || !s.sess.UpdateIdentity(p) {
		return models.Identity{}, ErrSessionChanged
	}
	snap := s.sess.Snapshot()
	if snap.Identity == nil {
		return models.Identity{}, ErrSessionChanged
	}
	return *snap.Identity, nil
}
