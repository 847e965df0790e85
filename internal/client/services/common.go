package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/clubportal/internal/client/assets"
	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/client/router"
	"github.com/dmitrijs2005/clubportal/internal/client/session"
	"github.com/dmitrijs2005/clubportal/internal/common"
	"github.com/dmitrijs2005/clubportal/internal/logging"
)

var (
	ErrAlreadyRegistered = errors.New("already registered for this club")
	ErrNotPending        = errors.New("registration is not pending")
	ErrNoRecipients      = errors.New("no recipients")
	ErrNoManagedClub     = errors.New("you do not manage any club")
	ErrSessionChanged    = errors.New("session changed during the request")
)

// Session is the part of the session store services rely on.
type Session interface {
	Snapshot() session.Snapshot
	Current(gen uint64) bool
	UpdateIdentity(p models.IdentityPatch) bool
}

func requireUser(s Session) (session.Snapshot, error) {
	snap := s.Snapshot()
	if !snap.Authenticated() {
		return snap, common.ErrNoSession
	}
	return snap, nil
}

// requireView asks the router whether the live session may use view v.
func requireView(s Session, v router.View) (session.Snapshot, error) {
	snap, err := requireUser(s)
	if err != nil {
		return snap, err
	}
	if err := router.Authorize(snap, v); err != nil {
		return snap, err
	}
	return snap, nil
}

// Image is a file picked by the user for an image-bearing entity.
type Image struct {
	Name    string
	Content io.Reader
}

// uploadImage stores img on the asset host. A nil img yields an empty
// reference; any failure stops the caller's mutation.
func uploadImage(ctx context.Context, up assets.Uploader, img *Image) (string, error) {
	if img == nil {
		return "", nil
	}
	if up == nil {
		return "", errors.New("upload image: no asset host configured")
	}
	ref, err := up.Upload(ctx, img.Name, img.Content)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if ref == "" {
		return "", errors.New("upload image: asset host returned an empty reference")
	}
	return ref, nil
}

// orEmpty turns a failed non-critical read into an empty list.
func orEmpty[T any](ctx context.Context, log logging.Logger, what string, items []T, err error) []T {
	if err != nil {
		log.Warn(ctx, "read failed, showing empty list", "what", what, "error", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}
