package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/dmitrijs2005/together/internal/client/client"
	"github.com/dmitrijs2005/together/internal/client/config"
	"github.com/dmitrijs2005/together/internal/client/credstore"
	"github.com/dmitrijs2005/together/internal/client/guard"
	"github.com/dmitrijs2005/together/internal/client/nav"
	"github.com/dmitrijs2005/together/internal/client/session"
	"github.com/dmitrijs2005/together/internal/i18n"
	"github.com/dmitrijs2005/together/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Session is what the shell needs from *session.Manager.
type Session interface {
	Snapshot() session.Snapshot
	Subscribe() (<-chan session.Snapshot, func())
	Refetch(ctx context.Context)
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context)
}

// Pinger reports whether the backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config    *config.Config
	session   Session
	pinger    Pinger
	guard     *guard.Guard
	history   *nav.History
	localizer *i18n.Localizer
	logger    logging.Logger
	db        *sql.DB

	reader *bufio.Reader
	outMu  sync.Mutex
	out    io.Writer
	colors bool

	mu      sync.Mutex
	mode    Mode
	current *guard.Area

	// navMu serializes route changes with the area entry they cause.
	navMu   sync.Mutex
	entered session.Snapshot
}

// NewApp wires the local store, the REST client, the session manager and
// the area guard from c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	store, err := credstore.New(ctx, db, []byte(c.StoreSecret))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	api, err := client.NewHTTPClient(c.ServerBaseURL, store, c.HTTPTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	manager := session.NewManager(api, store, logger, session.WithStaleRefetchGuard(c.StaleRefetchGuard))

	history := nav.NewHistory(nav.RouteGuestHome)
	localizer := i18n.New(c.Locale)
	g := guard.New(guard.PlatformCapabilities{IsWeb: c.IsWeb()}, history, localizer, logger)

	a := newApp(c, manager, api, g, history, localizer, logger, os.Stdin, os.Stdout)
	a.db = db
	a.colors = useColors(os.Stdout)
	return a, nil
}

func newApp(c *config.Config, s Session, p Pinger, g *guard.Guard, h *nav.History,
	l *i18n.Localizer, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config:    c,
		session:   s,
		pinger:    p,
		guard:     g,
		history:   h,
		localizer: l,
		logger:    logger,
		reader:    bufio.NewReader(in),
		out:       out,
	}
}

// Close releases the local database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// setMode records the connectivity mode and reports whether it changed.
func (a *App) setMode(ctx context.Context, mode Mode) bool {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", mode)
	}
	return changed
}

func (a *App) currentArea() *guard.Area {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *App) setCurrentArea(area *guard.Area) {
	a.mu.Lock()
	a.current = area
	a.mu.Unlock()
}

// navigate runs fn with route changes serialized against the session
// watcher.
func (a *App) navigate(fn func()) {
	a.navMu.Lock()
	defer a.navMu.Unlock()
	fn()
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

// notice prints a highlighted line when colors are enabled.
func (a *App) notice(attr color.Attribute, args ...any) {
	if !a.colors {
		a.println(args...)
		return
	}
	a.outMu.Lock()
	defer a.outMu.Unlock()
	color.New(attr).Fprintln(a.out, args...)
}

func useColors(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
