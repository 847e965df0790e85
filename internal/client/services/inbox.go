package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/clubportal/internal/client/client"
	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/logging"
)

const UnknownSender = "Unknown"

// Entry is a notification with its sender's display name.
type Entry struct {
	models.Notification
	SenderName string
}

// Inbox holds the signed-in user's notifications.
type Inbox interface {
	Load(ctx context.Context) ([]Entry, error)
	Entries() []Entry
	// Dismiss deletes one notification remotely and, once confirmed,
	// drops it from the local list.
	Dismiss(ctx context.Context, id models.ID) error
}

type inbox struct {
	gw   client.NotificationAPI
	sess Session
	log  logging.Logger

	mu      sync.Mutex
	entries []Entry
	owner   uint64
}

func NewInbox(gw client.NotificationAPI, sess Session, log logging.Logger) Inbox {
	if log == nil {
		log = logging.Nop()
	}
	return &inbox{gw: gw, sess: sess, log: log}
}

func (b *inbox) Load(ctx context.Context) ([]Entry, error) {
	snap, err := requireUser(b.sess)
	if err != nil {
		return nil, err
	}
	list, err := b.gw.Notifications(ctx, snap.Identity.ID)
	list = orEmpty(ctx, b.log, "notifications", list, err)

	names := map[models.ID]string{}
	entries := make([]Entry, 0, len(list))
	for _, n := range list {
		name, ok := names[n.SenderID]
		if !ok {
			name = b.senderName(ctx, n.SenderID)
			names[n.SenderID] = name
		}
		entries = append(entries, Entry{Notification: n, SenderName: name})
	}

	if !b.sess.Current(snap.Generation) {
		return nil, ErrSessionChanged
	}
	b.mu.Lock()
	b.entries, b.owner = entries, snap.Generation
	b.mu.Unlock()
	return slices.Clone(entries), nil
}

func (b *inbox) senderName(ctx context.Context, id models.ID) string {
	if id == "" {
		return UnknownSender
	}
	name, err := b.gw.SenderName(ctx, id)
	if err != nil || name == "" {
		if err != nil {
			b.log.Debug(ctx, "sender name lookup failed", "sender_id", id, "error", err)
		}
		return UnknownSender
	}
	return name
}

func (b *inbox) Entries() []Entry {
	gen := b.sess.Snapshot().Generation
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.owner != gen {
		return nil
	}
	return slices.Clone(b.entries)
}

func (b *inbox) Dismiss(ctx context.Context, id models.ID) error {
	snap, err := requireUser(b.sess)
	if err != nil {
		return err
	}
	if err := b.gw.DeleteNotification(ctx, snap.Identity.ID, id); err != nil {
		return fmt.Errorf("dismiss notification: %w", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.owner == snap.Generation {
		b.entries = slices.DeleteFunc(b.entries, func(e Entry) bool { return e.ID == id })
	}
	return nil
}
