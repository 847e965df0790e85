package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/clubportal/internal/client/client"
	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/client/router"
	"github.com/dmitrijs2005/clubportal/internal/logging"
)

// StudentService owns the signed-in student's registration list. The list
// is replaced wholesale by Refresh and by the poller; Join is the only
// local append.
type StudentService interface {
	Refresh(ctx context.Context) error
	// Epoch counts local joins. Read it before issuing a fetch and pass it
	// back to ReplaceRegistrations with the result.
	Epoch() uint64
	// ReplaceRegistrations installs a list fetched at epoch. Provisional
	// entries from joins made after that epoch survive until a fetch issued
	// after them applies.
	ReplaceRegistrations(epoch uint64, regs []models.Registration)
	Registrations() []models.Registration
	Status(clubID models.ID) (models.Status, bool)
	CanJoin(clubID models.ID) bool
	Join(ctx context.Context, clubID models.ID) (models.Registration, error)
	Reset()
}

type studentService struct {
	gw   client.RegistrationAPI
	sess Session
	log  logging.Logger

	mu    sync.Mutex
	regs  []models.Registration
	owner uint64
	epoch uint64
}

func NewStudentService(gw client.RegistrationAPI, sess Session, log logging.Logger) StudentService {
	if log == nil {
		log = logging.Nop()
	}
	return &studentService{gw: gw, sess: sess, log: log}
}

func (s *studentService) Refresh(ctx context.Context) error {
	snap, err := requireView(s.sess, router.ViewStudent)
	if err != nil {
		return err
	}
	epoch := s.Epoch()
	regs, err := s.gw.StudentRegistrations(ctx, snap.Identity.ID)
	if err != nil {
		return fmt.Errorf("load registrations: %w", err)
	}
	if !s.sess.Current(snap.Generation) {
		return ErrSessionChanged
	}
	s.install(epoch, regs, snap.Generation)
	return nil
}

func (s *studentService) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

func (s *studentService) ReplaceRegistrations(epoch uint64, regs []models.Registration) {
	s.install(epoch, regs, s.sess.Snapshot().Generation)
}

func (s *studentService) install(epoch uint64, regs []models.Registration, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := slices.Clone(regs)
	if epoch < s.epoch && s.owner == gen {
		// The fetch was issued before a join; it cannot know about it yet.
		for _, r := range s.regs {
			if r.Provisional && router.CanJoin(next, r.ClubID) {
				next = append(next, r)
			}
		}
	}
	s.regs = next
	s.owner = gen
}

// current returns the list if it belongs to the live session.
func (s *studentService) current() []models.Registration {
	gen := s.sess.Snapshot().Generation
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner != gen {
		return nil
	}
	return s.regs
}

func (s *studentService) Registrations() []models.Registration {
	return slices.Clone(s.current())
}

func (s *studentService) Status(clubID models.ID) (models.Status, bool) {
	reg, ok := router.RegistrationFor(s.current(), clubID)
	return reg.Status, ok
}

func (s *studentService) CanJoin(clubID models.ID) bool {
	if router.Select(s.sess.Snapshot()) != router.ViewStudent {
		return false
	}
	return router.CanJoin(s.current(), clubID)
}

func (s *studentService) Join(ctx context.Context, clubID models.ID) (models.Registration, error) {
	snap, err := requireView(s.sess, router.ViewStudent)
	if err != nil {
		return models.Registration{}, err
	}
	if !router.CanJoin(s.current(), clubID) {
		return models.Registration{}, ErrAlreadyRegistered
	}

	reg, err := s.gw.CreateRegistration(ctx, snap.Identity.ID, clubID)
	if err != nil {
		return models.Registration{}, fmt.Errorf("join club %s: %w", clubID, err)
	}
	if !s.sess.Current(snap.Generation) {
		return reg, ErrSessionChanged
	}

	// Stand-in until a fetch issued after this point reports the real row.
	if reg.StudentID == "" {
		reg.StudentID = snap.Identity.ID
	}
	if reg.ClubID == "" {
		reg.ClubID = clubID
	}
	if reg.Status == "" {
		reg.Status = models.StatusPending
	}
	reg.Provisional = true
	s.mu.Lock()
	if s.owner != snap.Generation {
		s.regs, s.owner = nil, snap.Generation
	}
	if router.CanJoin(s.regs, clubID) {
		s.regs = append(slices.Clone(s.regs), reg)
	}
	s.epoch++
	s.mu.Unlock()

	s.log.Info(ctx, "join requested", "club_id", clubID, "status", reg.Status)
	return reg, nil
}

func (s *studentService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs, s.owner = nil, 0
}
