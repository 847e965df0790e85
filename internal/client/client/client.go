package client

import (
	"context"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/netx"
)

type UserAPI interface {
	Login(ctx context.Context, email, password string) (models.Identity, error)
	Register(ctx context.Context, name, email, password string) (models.Identity, error)
	GetUser(ctx context.Context, id models.ID) (models.Identity, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id models.ID, in models.ProfileInput) error
	UpdateAvatar(ctx context.Context, id models.ID, file netx.FilePart) (string, error)
}

type ClubAPI interface {
	ListClubs(ctx context.Context) ([]models.Club, error)
	GetClub(ctx context.Context, id models.ID) (models.Club, error)
	CreateClub(ctx context.Context, in models.ClubInput) (models.Club, error)
	UpdateClub(ctx context.Context, id models.ID, in models.ClubInput) (models.Club, error)
	TransferClub(ctx context.Context, id, managerID models.ID) error
	DeleteClub(ctx context.Context, id models.ID) error
	ManagedClub(ctx context.Context, managerID models.ID) (models.ManagedClubRef, error)
}

type ActivityAPI interface {
	ListActivities(ctx context.Context) ([]models.Activity, error)
	GetActivity(ctx context.Context, id models.ID) (models.Activity, error)
	RecentActivities(ctx context.Context) ([]models.Activity, error)
	ArchivedActivities(ctx context.Context) ([]models.Activity, error)
	CreateActivity(ctx context.Context, in models.ActivityInput) (models.Activity, error)
	UpdateActivity(ctx context.Context, id models.ID, in models.ActivityInput) error
	DeleteActivity(ctx context.Context, id models.ID) error
}

type RegistrationAPI interface {
	ClubRegistrations(ctx context.Context, clubID models.ID) ([]models.Registration, error)
	AllRegistrations(ctx context.Context) ([]models.Registration, error)
	StudentRegistrations(ctx context.Context, studentID models.ID) ([]models.Registration, error)
	CreateRegistration(ctx context.Context, studentID, clubID models.ID) (models.Registration, error)
	UpdateRegistrationStatus(ctx context.Context, studentID, clubID models.ID, status models.Status) error
	DeleteRegistration(ctx context.Context, studentID, clubID models.ID) error
}

type NotificationAPI interface {
	Notifications(ctx context.Context, userID models.ID) ([]models.Notification, error)
	SendNotification(ctx context.Context, in models.NotificationInput) error
	DeleteNotification(ctx context.Context, receiverID, id models.ID) error
	SenderName(ctx context.Context, senderID models.ID) (string, error)
}

type BadgeAPI interface {
	AwardBadge(ctx context.Context, studentID models.ID, badge models.BadgeBrief) error
	Badges(ctx context.Context, userID models.ID) ([]models.Badge, error)
}

// Gateway is the full remote contract. It holds no cache: every call is a
// network round trip.
type Gateway interface {
	UserAPI
	ClubAPI
	ActivityAPI
	RegistrationAPI
	NotificationAPI
	BadgeAPI
}
