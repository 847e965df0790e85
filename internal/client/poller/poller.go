// Package poller refreshes a student's registrations on a fixed interval
// while their session is active.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/client/router"
	"github.com/dmitrijs2005/clubportal/internal/client/session"
	"github.com/dmitrijs2005/clubportal/internal/logging"
	"github.com/jonboulle/clockwork"
)

const DefaultInterval = 4 * time.Second

// ErrNotStudent is returned by Start when the session has no active student.
var ErrNotStudent = errors.New("polling requires an active student session")

type Fetcher interface {
	StudentRegistrations(ctx context.Context, studentID models.ID) ([]models.Registration, error)
}

// Session is what the synchronizer reads from the session store.
type Session interface {
	Snapshot() session.Snapshot
	Current(gen uint64) bool
}

// Sink receives each applied registration list. Epoch is read when a fetch
// is issued and handed back with its result, so the sink can tell which of
// its own local changes the fetch could have seen.
type Sink interface {
	Epoch() uint64
	ReplaceRegistrations(epoch uint64, regs []models.Registration)
}

type Synchronizer struct {
	fetch    Fetcher
	clock    clockwork.Clock
	interval time.Duration
	log      logging.Logger
}

type Option func(*Synchronizer)

func WithClock(c clockwork.Clock) Option {
	return func(s *Synchronizer) { s.clock = c }
}

func WithInterval(d time.Duration) Option {
	return func(s *Synchronizer) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(s *Synchronizer) { s.log = l }
}

func New(fetch Fetcher, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		fetch:    fetch,
		clock:    clockwork.NewRealClock(),
		interval: DefaultInterval,
		log:      logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Synchronizer) Interval() time.Duration { return s.interval }

// Start begins polling for the student signed in to sess and returns the
// handle that stops it. The first fetch is issued immediately.
func (s *Synchronizer) Start(ctx context.Context, sess Session, sink Sink) (*Handle, error) {
	snap := sess.Snapshot()
	if router.Select(snap) != router.ViewStudent {
		return nil, ErrNotStudent
	}

	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		s:         s,
		sess:      sess,
		sink:      sink,
		studentID: snap.Identity.ID,
		gen:       snap.Generation,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	ticker := s.clock.NewTicker(s.interval)
	go h.run(ctx, ticker)
	s.log.Debug(ctx, "registration polling started", "user_id", h.studentID, "interval", s.interval)
	return h, nil
}

// Handle controls one polling loop.
type Handle struct {
	s         *Synchronizer
	sess      Session
	sink      Sink
	studentID models.ID
	gen       uint64
	cancel    context.CancelFunc
	done      chan struct{}

	mu      sync.Mutex
	issued  uint64
	applied uint64
	stopped bool
}

func (h *Handle) run(ctx context.Context, ticker clockwork.Ticker) {
	defer close(h.done)
	defer ticker.Stop()

	h.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			h.tick(ctx)
		}
	}
}

// tick issues one fetch. Fetches may overlap; each carries its sequence
// number and only a result newer than the last applied one is used.
func (h *Handle) tick(ctx context.Context) {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.issued++
	seq := h.issued
	h.mu.Unlock()
	epoch := h.sink.Epoch()

	go func() {
		regs, err := h.s.fetch.StudentRegistrations(ctx, h.studentID)
		if err != nil {
			if ctx.Err() == nil {
				h.s.log.Warn(ctx, "registration poll failed", "seq", seq, "error", err)
			}
			return
		}
		h.apply(seq, epoch, regs)
	}()
}

func (h *Handle) apply(seq, epoch uint64, regs []models.Registration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped || seq <= h.applied {
		return
	}
	if !h.sess.Current(h.gen) {
		return
	}
	h.applied = seq
	if regs == nil {
		regs = []models.Registration{}
	}
	h.sink.ReplaceRegistrations(epoch, regs)
}

// Stop ends the loop. After Stop returns no result is applied, including
// responses still in flight. It is safe to call more than once.
func (h *Handle) Stop() {
	h.mu.Lock()
	h.stopped = true
	h.mu.Unlock()
	h.cancel()
	<-h.done
}

// Done is closed once the loop has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Issued returns how many fetches the loop has started.
func (h *Handle) Issued() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.issued
}
