package services

import (
	"context"
	"io"
	"sync"

	"github.com/dmitrijs2005/clubportal/internal/client/client"
	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/client/session"
	"github.com/dmitrijs2005/clubportal/internal/netx"
)

type fakeSession struct {
	mu   sync.Mutex
	snap session.Snapshot
}

func newFakeSession(id *models.Identity) *fakeSession {
	return &fakeSession{snap: session.Snapshot{State: session.StateReady, Identity: id, Generation: 1}}
}

func asUser(id string, role models.Role) *fakeSession {
	return newFakeSession(&models.Identity{User: models.User{ID: models.ID(id), Name: "User " + id, Role: role}})
}

func (s *fakeSession) Snapshot() session.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *fakeSession) Current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Generation == gen
}

func (s *fakeSession) UpdateIdentity(p models.IdentityPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Identity == nil {
		return false
	}
	merged := s.snap.Identity.Merge(p)
	s.snap.Identity = &merged
	return true
}

func (s *fakeSession) logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Identity = nil
	s.snap.Generation++
}

// fakeGateway returns canned results and records the last arguments of
// every mutation.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	user     models.Identity
	userErr  error
	users    []models.User
	usersErr error

	clubs      []models.Club
	clubsErr   error
	club       models.Club
	clubErr    error
	managed    models.ManagedClubRef
	managedErr error

	activities    []models.Activity
	activitiesErr error
	recent        []models.Activity
	archived      []models.Activity

	regs       []models.Registration
	regsErr    error
	allRegs    []models.Registration
	createdReg models.Registration
	regErr     error

	notifications []models.Notification
	senderNames   map[models.ID]string
	badges        []models.Badge
	badgesErr     error

	avatarRef   string
	mutationErr error
	notifyErr   error
	afterCreate func()

	lastProfile      models.ProfileInput
	lastAvatar       netx.FilePart
	lastClubInput    models.ClubInput
	lastClubID       models.ID
	lastActivityIn   models.ActivityInput
	lastStatus       models.Status
	lastStudentID    models.ID
	lastManagerID    models.ID
	lastNotification models.NotificationInput
	sent             int
	lastBadge        models.BadgeBrief
	lastDeletedID    models.ID
	senderLookups    map[models.ID]int
}

var _ client.Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
}

func (f *fakeGateway) called(op string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == op {
			return true
		}
	}
	return false
}

func (f *fakeGateway) Login(context.Context, string, string) (models.Identity, error) {
	f.record("Login")
	return f.user, f.userErr
}

func (f *fakeGateway) Register(context.Context, string, string, string) (models.Identity, error) {
	f.record("Register")
	return f.user, f.userErr
}

func (f *fakeGateway) GetUser(context.Context, models.ID) (models.Identity, error) {
	f.record("GetUser")
	return f.user, f.userErr
}

func (f *fakeGateway) ListUsers(context.Context) ([]models.User, error) {
	f.record("ListUsers")
	return f.users, f.usersErr
}

func (f *fakeGateway) UpdateProfile(_ context.Context, _ models.ID, in models.ProfileInput) error {
	f.record("UpdateProfile")
	f.lastProfile = in
	return f.mutationErr
}

func (f *fakeGateway) UpdateAvatar(_ context.Context, _ models.ID, file netx.FilePart) (string, error) {
	f.record("UpdateAvatar")
	f.lastAvatar = file
	if f.mutationErr != nil {
		return "", f.mutationErr
	}
	return f.avatarRef, nil
}

func (f *fakeGateway) ListClubs(context.Context) ([]models.Club, error) {
	f.record("ListClubs")
	return f.clubs, f.clubsErr
}

func (f *fakeGateway) GetClub(_ context.Context, id models.ID) (models.Club, error) {
	f.record("GetClub")
	f.lastClubID = id
	return f.club, f.clubErr
}

func (f *fakeGateway) CreateClub(_ context.Context, in models.ClubInput) (models.Club, error) {
	f.record("CreateClub")
	f.lastClubInput = in
	if f.mutationErr != nil {
		return models.Club{}, f.mutationErr
	}
	return models.Club{ID: "new", Name: in.Name, Image: in.Image}, nil
}

func (f *fakeGateway) UpdateClub(_ context.Context, id models.ID, in models.ClubInput) (models.Club, error) {
	f.record("UpdateClub")
	f.lastClubID, f.lastClubInput = id, in
	if f.mutationErr != nil {
		return models.Club{}, f.mutationErr
	}
	return models.Club{ID: id, Name: in.Name, Image: in.Image}, nil
}

func (f *fakeGateway) TransferClub(_ context.Context, id, managerID models.ID) error {
	f.record("TransferClub")
	f.lastClubID, f.lastManagerID = id, managerID
	return f.mutationErr
}

func (f *fakeGateway) DeleteClub(_ context.Context, id models.ID) error {
	f.record("DeleteClub")
	f.lastDeletedID = id
	return f.mutationErr
}

func (f *fakeGateway) ManagedClub(context.Context, models.ID) (models.ManagedClubRef, error) {
	f.record("ManagedClub")
	return f.managed, f.managedErr
}

func (f *fakeGateway) ListActivities(context.Context) ([]models.Activity, error) {
	f.record("ListActivities")
	return f.activities, f.activitiesErr
}

func (f *fakeGateway) GetActivity(context.Context, models.ID) (models.Activity, error) {
	f.record("GetActivity")
	if len(f.activities) == 0 {
		return models.Activity{}, f.activitiesErr
	}
	return f.activities[0], f.activitiesErr
}

func (f *fakeGateway) RecentActivities(context.Context) ([]models.Activity, error) {
	f.record("RecentActivities")
	return f.recent, nil
}

func (f *fakeGateway) ArchivedActivities(context.Context) ([]models.Activity, error) {
	f.record("ArchivedActivities")
	return f.archived, nil
}

func (f *fakeGateway) CreateActivity(_ context.Context, in models.ActivityInput) (models.Activity, error) {
	f.record("CreateActivity")
	f.lastActivityIn = in
	if f.mutationErr != nil {
		return models.Activity{}, f.mutationErr
	}
	return models.Activity{ID: "a-new", Title: in.Title, Date: in.Date, Location: in.Location, Image: in.Image}, nil
}

func (f *fakeGateway) UpdateActivity(_ context.Context, _ models.ID, in models.ActivityInput) error {
	f.record("UpdateActivity")
	f.lastActivityIn = in
	return f.mutationErr
}

func (f *fakeGateway) DeleteActivity(_ context.Context, id models.ID) error {
	f.record("DeleteActivity")
	f.lastDeletedID = id
	return f.mutationErr
}

func (f *fakeGateway) ClubRegistrations(context.Context, models.ID) ([]models.Registration, error) {
	f.record("ClubRegistrations")
	return f.regs, f.regsErr
}

func (f *fakeGateway) AllRegistrations(context.Context) ([]models.Registration, error) {
	f.record("AllRegistrations")
	return f.allRegs, f.regsErr
}

func (f *fakeGateway) StudentRegistrations(context.Context, models.ID) ([]models.Registration, error) {
	f.record("StudentRegistrations")
	return f.regs, f.regsErr
}

func (f *fakeGateway) CreateRegistration(_ context.Context, studentID, clubID models.ID) (models.Registration, error) {
	f.record("CreateRegistration")
	f.lastStudentID, f.lastClubID = studentID, clubID
	if f.afterCreate != nil {
		f.afterCreate()
	}
	if f.regErr != nil {
		return models.Registration{}, f.regErr
	}
	return f.createdReg, nil
}

func (f *fakeGateway) UpdateRegistrationStatus(_ context.Context, studentID, clubID models.ID, status models.Status) error {
	f.record("UpdateRegistrationStatus")
	f.lastStudentID, f.lastClubID, f.lastStatus = studentID, clubID, status
	return f.mutationErr
}

func (f *fakeGateway) DeleteRegistration(_ context.Context, studentID, clubID models.ID) error {
	f.record("DeleteRegistration")
	f.lastStudentID, f.lastClubID = studentID, clubID
	return f.mutationErr
}

func (f *fakeGateway) Notifications(context.Context, models.ID) ([]models.Notification, error) {
	f.record("Notifications")
	return f.notifications, nil
}

func (f *fakeGateway) SendNotification(_ context.Context, in models.NotificationInput) error {
	f.record("SendNotification")
	f.lastNotification = in
	f.sent++
	return f.notifyErr
}

func (f *fakeGateway) DeleteNotification(_ context.Context, _ models.ID, id models.ID) error {
	f.record("DeleteNotification")
	f.lastDeletedID = id
	return f.mutationErr
}

func (f *fakeGateway) SenderName(_ context.Context, id models.ID) (string, error) {
	f.record("SenderName")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.senderLookups == nil {
		f.senderLookups = map[models.ID]int{}
	}
	f.senderLookups[id]++
	name, ok := f.senderNames[id]
	if !ok {
		return "", &client.Error{Op: "sender name", Kind: client.KindRejected, Status: 404}
	}
	return name, nil
}

func (f *fakeGateway) AwardBadge(_ context.Context, studentID models.ID, b models.BadgeBrief) error {
	f.record("AwardBadge")
	f.lastStudentID, f.lastBadge = studentID, b
	return f.mutationErr
}

func (f *fakeGateway) Badges(context.Context, models.ID) ([]models.Badge, error) {
	f.record("Badges")
	return f.badges, f.badgesErr
}

type fakeUploader struct {
	ref      string
	err      error
	lastName string
	calls    int
}

func (u *fakeUploader) Upload(_ context.Context, name string, r io.Reader) (string, error) {
	u.calls++
	u.lastName = name
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	return u.ref, u.err
}

func transportErr(op string) error {
	return &client.Error{Op: op, Kind: client.KindTransport, Err: io.ErrUnexpectedEOF}
}
