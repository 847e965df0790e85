package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/clubportal/internal/client/assets"
	"github.com/dmitrijs2005/clubportal/internal/client/chat"
	"github.com/dmitrijs2005/clubportal/internal/client/client"
	"github.com/dmitrijs2005/clubportal/internal/client/config"
	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/client/poller"
	"github.com/dmitrijs2005/clubportal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/clubportal/internal/client/router"
	"github.com/dmitrijs2005/clubportal/internal/client/services"
	"github.com/dmitrijs2005/clubportal/internal/client/session"
	"github.com/dmitrijs2005/clubportal/internal/logging"
)

// sessionStore is the session API the App drives. *session.Store satisfies it.
type sessionStore interface {
	Snapshot() session.Snapshot
	Current(gen uint64) bool
	UpdateIdentity(p models.IdentityPatch) bool
	OnChange(fn func(session.Snapshot))
	Initialize(ctx context.Context) session.Snapshot
	Login(ctx context.Context, email, password string) (models.Identity, error)
	Signup(ctx context.Context, in session.SignupInput) (models.Identity, error)
	Logout(ctx context.Context) error
}

type App struct {
	log    logging.Logger
	out    io.Writer
	reader *bufio.Reader
	db     *sql.DB

	session   sessionStore
	catalog   services.CatalogService
	student   services.StudentService
	profile   services.ProfileService
	manager   services.ManagerService
	admin     services.AdminService
	inbox     services.Inbox
	assistant *chat.Assistant
	poller    *poller.Synchronizer

	mu      sync.Mutex
	tab     router.StudentTab
	polling *poller.Handle
	pollGen uint64
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	persist, db, err := openPersistence(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	closeDB := func() {
		if db != nil {
			db.Close()
		}
	}

	gw := client.NewHTTPClient(cfg.BaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log))

	uploader, err := assets.New(ctx, cfg.Assets, log)
	if err != nil {
		closeDB()
		return nil, fmt.Errorf("configure asset host: %w", err)
	}

	var backend chat.Backend
	if cfg.Chat.APIKey != "" {
		g, err := chat.NewGeminiBackend(ctx, cfg.Chat.APIKey, cfg.Chat.Model)
		if err != nil {
			log.Warn(ctx, "chat assistant unavailable", "error", err)
		} else {
			backend = g
		}
	}

	store := session.NewStore(gw, persist, session.WithLogger(log))
	app := newApp(store, gw, uploader, chat.NewAssistant(backend, cfg.Chat.Temperature, log),
		poller.New(gw, poller.WithInterval(cfg.PollInterval), poller.WithLogger(log)), log)
	app.db = db
	return app, nil
}

// openPersistence opens the local store at path. An empty path keeps the
// sign-in in memory only, so it is forgotten when the process exits.
func openPersistence(ctx context.Context, path string) (session.Persistence, *sql.DB, error) {
	if path == "" {
		return session.NewRepositoryPersistence(metadata.NewMemoryRepository()), nil, nil
	}
	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize database: %w", err)
	}
	return session.NewSQLitePersistence(db), db, nil
}

func newApp(store sessionStore, gw client.Gateway, up assets.Uploader, assistant *chat.Assistant, syncer *poller.Synchronizer, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		log:       log,
		out:       os.Stdout,
		reader:    bufio.NewReader(os.Stdin),
		session:   store,
		catalog:   services.NewCatalogService(gw, log),
		student:   services.NewStudentService(gw, store, log),
		profile:   services.NewProfileService(gw, store, log),
		manager:   services.NewManagerService(gw, up, store, log),
		admin:     services.NewAdminService(gw, up, store, log),
		inbox:     services.NewInbox(gw, store, log),
		assistant: assistant,
		poller:    syncer,
	}
}

// Run restores the previous session and serves the REPL until the user
// leaves or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.session.OnChange(func(snap session.Snapshot) { a.syncPolling(ctx, snap) })

	printlnFn("Welcome to the club portal (type 'help' for commands)")
	snap := a.session.Initialize(ctx)
	a.syncPolling(ctx, snap)
	if snap.Identity != nil {
		printlnFn(fmt.Sprintf("Signed in as %s (%s)", snap.Identity.Name, snap.Identity.Role))
	}

	runREPL(ctx, a, a.reader)
	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close stops background polling and releases the local store.
func (a *App) Close() error {
	a.stopPolling()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// syncPolling keeps exactly one poller running while the student view is
// active, restarting it when the session generation moves on.
func (a *App) syncPolling(ctx context.Context, snap session.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	student := router.Select(snap) == router.ViewStudent
	if a.polling != nil && (!student || a.pollGen != snap.Generation) {
		a.polling.Stop()
		a.polling = nil
		a.student.Reset()
		a.tab = router.TabHome
	}
	if !student || a.polling != nil || a.poller == nil {
		return
	}
	h, err := a.poller.Start(ctx, a.session, a.student)
	if err != nil {
		a.log.Warn(ctx, "registration polling not started", "error", err)
		return
	}
	a.polling, a.pollGen = h, snap.Generation
}

func (a *App) stopPolling() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.polling != nil {
		a.polling.Stop()
		a.polling = nil
	}
}

func (a *App) pollingActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.polling != nil
}

func (a *App) currentTab() router.StudentTab {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tab
}

func (a *App) setTab(t router.StudentTab) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tab = t
}

func (a *App) view() router.View {
	return router.Select(a.session.Snapshot())
}

func (a *App) prompt(v router.View) string {
	snap := a.session.Snapshot()
	switch {
	case v == router.ViewLoading:
		return "clubportal (loading)> "
	case snap.Identity == nil:
		return "clubportal (guest)> "
	case v == router.ViewStudent:
		return fmt.Sprintf("clubportal (%s, %s/%s)> ", snap.Identity.Name, v, a.currentTab())
	}
	return fmt.Sprintf("clubportal (%s, %s)> ", snap.Identity.Name, v)
}

// commands returns the command table of v. Every handler re-checks the view
// through the router before it runs.
func (a *App) commands(v router.View) []command {
	var cmds []command
	switch v {
	case router.ViewGuest:
		cmds = a.guestCommands()
	case router.ViewStudent:
		cmds = a.studentCommands()
	case router.ViewClubManager:
		cmds = a.managerCommands()
	case router.ViewAdmin:
		cmds = a.adminCommands()
	}
	for i := range cmds {
		cmds[i].run = a.guard(v, cmds[i].run)
	}
	return cmds
}

func (a *App) guard(v router.View, run func(context.Context, []string) error) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		if err := router.Authorize(a.session.Snapshot(), v); err != nil {
			return err
		}
		return run(ctx, args)
	}
}

func (a *App) say(format string, args ...any) {
	printlnFn(fmt.Sprintf(format, args...))
}
