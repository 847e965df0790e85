// Package session owns the process-wide authentication state of the client.
//
// A Store moves through Uninitialized -> Loading -> Ready. Once Ready it
// either holds the signed-in Identity or nothing. Login and signup apply
// atomically: the identity reference is persisted first and the in-memory
// identity replaced only after that succeeds.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/clubportal/internal/client/client"
	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/client/validation"
	"github.com/dmitrijs2005/clubportal/internal/logging"
)

type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// Snapshot is an immutable view of the store. Identity is nil for an
// anonymous session.
type Snapshot struct {
	State      State
	Identity   *models.Identity
	Generation uint64
}

// Authenticated reports whether the snapshot is Ready with an identity.
func (s Snapshot) Authenticated() bool {
	return s.State == StateReady && s.Identity != nil
}

// Authenticator is the subset of the gateway the store talks to.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (models.Identity, error)
	Register(ctx context.Context, name, email, password string) (models.Identity, error)
	GetUser(ctx context.Context, id models.ID) (models.Identity, error)
}

// SignupInput is the registration form. Confirm must equal Password.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

type Store struct {
	auth    Authenticator
	persist Persistence
	log     logging.Logger

	mu        sync.RWMutex
	state     State
	identity  *models.Identity
	gen       uint64
	listeners []func(Snapshot)

	initOnce sync.Once
	initDone chan struct{}
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func NewStore(auth Authenticator, persist Persistence, opts ...Option) *Store {
	s := &Store{
		auth:     auth,
		persist:  persist,
		log:      logging.Nop(),
		initDone: make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{State: s.state, Generation: s.gen}
	if s.identity != nil {
		id := *s.identity
		snap.Identity = &id
	}
	return snap
}

// Current reports whether gen is still the active session generation.
// Callers capture Snapshot().Generation before a remote call and check it
// before applying a late response.
func (s *Store) Current(gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen == gen
}

// OnChange registers fn to be called after every identity change.
func (s *Store) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(snap Snapshot, listeners []func(Snapshot)) {
	for _, fn := range listeners {
		fn(snap)
	}
}

// Initialize rehydrates the session from the persisted reference. Only the
// first call does any work; every call returns once the store is Ready.
func (s *Store) Initialize(ctx context.Context) Snapshot {
	s.initOnce.Do(func() {
		defer close(s.initDone)
		s.rehydrate(ctx)
	})
	<-s.initDone
	return s.Snapshot()
}

func (s *Store) rehydrate(ctx context.Context) {
	s.mu.Lock()
	if s.state == StateReady {
		// A login already completed; nothing to restore.
		s.mu.Unlock()
		return
	}
	s.state = StateLoading
	gen := s.gen
	s.mu.Unlock()

	identity, ok := s.restore(ctx)

	s.mu.Lock()
	if s.gen != gen {
		// Login or logout won the race; keep its result.
		s.state = StateReady
		s.mu.Unlock()
		return
	}
	s.state = StateReady
	if ok {
		s.identity = &identity
		s.gen++
	}
	snap, listeners := s.snapshotLocked(), s.listeners
	s.mu.Unlock()

	if ok {
		s.log.Info(ctx, "session restored", "user_id", identity.ID, "role", identity.Role)
		s.notify(snap, listeners)
	}
}

func (s *Store) restore(ctx context.Context) (models.Identity, bool) {
	ref, err := s.persist.Get(ctx)
	if err != nil {
		s.log.Warn(ctx, "read identity reference", "error", err)
		return models.Identity{}, false
	}
	if ref == "" {
		return models.Identity{}, false
	}

	identity, err := s.auth.GetUser(ctx, ref)
	if err != nil {
		s.log.Warn(ctx, "rehydration failed", "user_id", ref, "error", err)
		// The reference is stale only when the server answered; keep it
		// across transport failures.
		if !errors.Is(err, client.ErrTransport) {
			if cerr := s.persist.Clear(ctx); cerr != nil {
				s.log.Warn(ctx, "clear stale identity reference", "error", cerr)
			}
		}
		return models.Identity{}, false
	}
	return identity, true
}

// Login authenticates and, on success, replaces the identity. On any failure
// the store is left exactly as it was.
func (s *Store) Login(ctx context.Context, email, password string) (models.Identity, error) {
	if err := validation.Login(email, password); err != nil {
		return models.Identity{}, newFailure("login", err)
	}

	identity, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.log.Info(ctx, "login rejected", "email", email, "error", err)
		return models.Identity{}, newFailure("login", err)
	}
	if err := s.establish(ctx, identity); err != nil {
		return models.Identity{}, newFailure("login", err)
	}
	s.log.Info(ctx, "logged in", "user_id", identity.ID, "role", identity.Role)
	return identity, nil
}

// Signup validates the form locally, registers and signs the new user in.
func (s *Store) Signup(ctx context.Context, in SignupInput) (models.Identity, error) {
	if err := validation.Signup(in.Name, in.Email, in.Password, in.Confirm); err != nil {
		return models.Identity{}, newFailure("signup", err)
	}

	identity, err := s.auth.Register(ctx, in.Name, in.Email, in.Password)
	if err != nil {
		s.log.Info(ctx, "signup rejected", "email", in.Email, "error", err)
		return models.Identity{}, newFailure("signup", err)
	}
	if err := s.establish(ctx, identity); err != nil {
		return models.Identity{}, newFailure("signup", err)
	}
	s.log.Info(ctx, "signed up", "user_id", identity.ID)
	return identity, nil
}

func (s *Store) establish(ctx context.Context, identity models.Identity) error {
	if err := s.persist.Set(ctx, identity.ID); err != nil {
		s.log.Error(ctx, "persist identity reference", "error", err)
		return err
	}

	s.mu.Lock()
	s.identity = &identity
	s.state = StateReady
	s.gen++
	snap, listeners := s.snapshotLocked(), s.listeners
	s.mu.Unlock()

	s.notify(snap, listeners)
	return nil
}

// Logout clears the identity and its persisted reference. It is safe to call
// without an active session. The in-memory identity is cleared even when the
// persistence layer fails.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	had := s.identity != nil
	s.identity = nil
	if s.state != StateLoading {
		s.state = StateReady
	}
	s.gen++
	snap, listeners := s.snapshotLocked(), s.listeners
	s.mu.Unlock()

	if had {
		s.notify(snap, listeners)
		s.log.Info(ctx, "logged out")
	}

	if err := s.persist.Clear(ctx); err != nil {
		return newFailure("logout", err)
	}
	return nil
}

// UpdateIdentity merges p into the current identity without a round trip.
// It reports false and does nothing when no identity is present.
func (s *Store) UpdateIdentity(p models.IdentityPatch) bool {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return false
	}
	merged := s.identity.Merge(p)
	s.identity = &merged
	snap, listeners := s.snapshotLocked(), s.listeners
	s.mu.Unlock()

	s.notify(snap, listeners)
	return true
}
