package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/clubportal/internal/client/chat"
	"github.com/dmitrijs2005/clubportal/internal/client/client"
	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/client/poller"
	"github.com/dmitrijs2005/clubportal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/clubportal/internal/client/router"
	"github.com/dmitrijs2005/clubportal/internal/client/services"
	"github.com/dmitrijs2005/clubportal/internal/client/session"
	"github.com/dmitrijs2005/clubportal/internal/client/validation"
	"github.com/dmitrijs2005/clubportal/internal/common"
)

// backend is a minimal in-memory portal API.
type backend struct {
	mu            sync.Mutex
	regs          []models.Registration
	studentPolls  int
	lastStatus    map[string]any
	notifications []map[string]any
}

var testUsers = map[string]models.User{
	"s@u.ma": {ID: "s1", Name: "Sara", Email: "s@u.ma", Role: models.RoleStudent},
	"m@u.ma": {ID: "m1", Name: "Malik", Email: "m@u.ma", Role: models.RoleClubManager},
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newBackend(t *testing.T) (*backend, *httptest.Server) {
	t.Helper()
	b := &backend{regs: []models.Registration{
		{ID: "r1", StudentID: "s1", ClubID: "c1", Status: models.StatusPending},
	}}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		var in struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		u, ok := testUsers[in.Email]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, u)
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []models.User{testUsers["s@u.ma"], testUsers["m@u.ma"]})
	})
	mux.HandleFunc("GET /clubs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []models.Club{{ID: "c1", Name: "Chess", Category: "Games"}, {ID: "c2", Name: "Drama"}})
	})
	mux.HandleFunc("GET /clubs/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Club{ID: models.ID(r.PathValue("id")), Name: "Chess", Category: "Games"})
	})
	mux.HandleFunc("GET /clubs/manager/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"id": "c1"})
	})
	mux.HandleFunc("GET /activities", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []models.Activity{{ID: "a1", Title: "Open day", Date: "2026-10-20", Location: "Hall A"}})
	})
	mux.HandleFunc("GET /registrations/student/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.studentPolls++
		writeJSON(w, b.regs)
	})
	mux.HandleFunc("GET /registrations/club/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, b.regs)
	})
	mux.HandleFunc("POST /registrations", func(w http.ResponseWriter, r *http.Request) {
		var reg models.Registration
		_ = json.NewDecoder(r.Body).Decode(&reg)
		reg.ID, reg.Status = "r2", models.StatusPending
		b.mu.Lock()
		b.regs = append(b.regs, reg)
		b.mu.Unlock()
		writeJSON(w, reg)
	})
	mux.HandleFunc("PUT /registrations", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.mu.Lock()
		b.lastStatus = in
		b.mu.Unlock()
		writeJSON(w, map[string]string{"message": "ok"})
	})
	mux.HandleFunc("POST /notifications", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.mu.Lock()
		b.notifications = append(b.notifications, in)
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *backend) polls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.studentPolls
}

// stubAnswers feeds prompts from a queue.
func stubAnswers(t *testing.T, text []string, passwords []string) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline
	next := func(q *[]string) (string, error) {
		if len(*q) == 0 {
			return "", io.EOF
		}
		v := (*q)[0]
		*q = (*q)[1:]
		return v, nil
	}
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return next(&text) }
	getMultiline = func(*bufio.Reader, string, io.Writer) (string, error) { return next(&text) }
	getPassword = func(string, io.Writer) (string, error) { return next(&passwords) }
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})
}

func newTestApp(t *testing.T, baseURL string) *App {
	t.Helper()
	gw := client.NewHTTPClient(baseURL, client.WithTimeout(5*time.Second))
	store := session.NewStore(gw, session.NewRepositoryPersistence(metadata.NewMemoryRepository()))
	syncer := poller.New(gw, poller.WithClock(clockwork.NewFakeClock()))
	app := newApp(store, gw, nil, chat.NewAssistant(nil, 0.7, nil), syncer, nil)
	app.out = io.Discard
	return app
}

func TestApp_StudentFlow(t *testing.T) {
	out := captureOutput(t)
	b, srv := newBackend(t)
	stubAnswers(t, []string{"s@u.ma"}, []string{"pw"})

	app := newTestApp(t, srv.URL)
	app.reader = rdr(strings.Join([]string{
		"join c2",
		"login",
		"help",
		"activities",
		"join c2",
		"profile",
		"join c1",
		"home",
		"logout",
		"exit",
	}, "\n"))

	require.NoError(t, app.Run(context.Background()))

	text := out()
	assert.Contains(t, text, `"join" is not available in the guest view`)
	assert.Contains(t, text, "Welcome back, Sara (student)")
	assert.Contains(t, text, "Commands in the student view:")
	assert.Contains(t, text, "Open day")
	assert.Contains(t, text, "Request sent, status: pending")
	assert.Contains(t, text, `"join" is on the home tab; type "home" first`)
	assert.Contains(t, text, "Signed out.")
	assert.False(t, app.pollingActive())
	assert.Empty(t, app.student.Registrations())

	b.mu.Lock()
	defer b.mu.Unlock()
	require.Len(t, b.regs, 2)
	assert.Equal(t, models.ID("c2"), b.regs[1].ClubID)
	assert.Equal(t, models.ID("s1"), b.regs[1].StudentID)
}

func TestApp_PollingFollowsStudentSession(t *testing.T) {
	captureOutput(t)
	b, srv := newBackend(t)
	app := newTestApp(t, srv.URL)
	ctx := context.Background()

	app.session.OnChange(func(snap session.Snapshot) { app.syncPolling(ctx, snap) })
	app.session.Initialize(ctx)
	assert.False(t, app.pollingActive())

	_, err := app.session.Login(ctx, "s@u.ma", "pw")
	require.NoError(t, err)
	require.True(t, app.pollingActive())
	require.Eventually(t, func() bool { return b.polls() > 0 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return len(app.student.Registrations()) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, app.session.Logout(ctx))
	assert.False(t, app.pollingActive())

	_, err = app.session.Login(ctx, "m@u.ma", "pw")
	require.NoError(t, err)
	assert.False(t, app.pollingActive(), "managers are not polled")
	require.NoError(t, app.Close())
}

func TestApp_ManagerAcceptsRequest(t *testing.T) {
	out := captureOutput(t)
	b, srv := newBackend(t)
	stubAnswers(t, []string{"m@u.ma"}, []string{"pw"})

	app := newTestApp(t, srv.URL)
	app.reader = rdr("login\ndashboard\npending\naccept s1\naccept s9\nexit\n")
	require.NoError(t, app.Run(context.Background()))

	text := out()
	assert.Contains(t, text, "[c1] Chess (Games)")
	assert.Contains(t, text, "Members: 0, pending requests: 1")
	assert.Contains(t, text, "s1: pending")
	assert.Contains(t, text, "Request accepted.")
	assert.Contains(t, text, "no registration for student s9")

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, "accepted", b.lastStatus["status"])
	assert.Equal(t, "s1", b.lastStatus["studentId"])
	require.Len(t, b.notifications, 1)
	assert.Equal(t, "success", b.notifications[0]["type"])
	assert.Equal(t, "c1", b.notifications[0]["senderId"])
	assert.Equal(t, "Congratulations! You have been accepted into Chess.", b.notifications[0]["message"])
}

func TestApp_GuestLoginFailureAndAssistant(t *testing.T) {
	out := captureOutput(t)
	_, srv := newBackend(t)
	stubAnswers(t, []string{"nobody@u.ma"}, []string{"pw"})

	app := newTestApp(t, srv.URL)
	app.reader = rdr("login\nask which clubs exist?\nexit\n")
	require.NoError(t, app.Run(context.Background()))

	text := out()
	assert.Contains(t, text, "Error: Invalid credentials")
	assert.Contains(t, text, "assistant: "+chat.OfflineReply)
	assert.Equal(t, router.ViewGuest, app.view())
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", &validation.Error{Field: "message", Reason: validation.ReasonEmptyMessage}, validation.ReasonEmptyMessage},
		{"session failure", &session.Failure{Op: "login", Reason: session.ReasonConnection}, session.ReasonConnection},
		{"no club", services.ErrNoManagedClub, msgNoClub},
		{"already joined", services.ErrAlreadyRegistered, msgAlreadyJoined},
		{"no session", common.ErrNoSession, msgNoSession},
		{"forbidden", common.ErrForbidden, msgForbidden},
		{"transport", &client.Error{Op: "x", Kind: client.KindTransport, Err: io.EOF}, session.ReasonConnection},
		{"malformed", &client.Error{Op: "x", Kind: client.KindMalformed}, session.ReasonUnexpected},
		{"rejected with message", &client.Error{Op: "x", Kind: client.KindRejected, Status: 409, Message: "Already exists"}, "Already exists"},
		{"rejected bare", &client.Error{Op: "x", Kind: client.KindRejected, Status: 500}, msgRejected},
		{"other", errors.New("disk full"), "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describe(tt.err))
		})
	}
}

func TestOpenPersistence(t *testing.T) {
	ctx := context.Background()

	p, db, err := openPersistence(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, db)
	require.NoError(t, p.Set(ctx, "7"))
	ref, err := p.Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, "7", ref)

	p, db, err = openPersistence(ctx, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, db)
	t.Cleanup(func() { _ = db.Close() })
	assert.IsType(t, &session.SQLitePersistence{}, p)
}
