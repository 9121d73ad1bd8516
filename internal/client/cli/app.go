package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/glamour/styles"
	"golang.org/x/term"

	"github.com/dmitrijs2005/gophtodo/internal/client/client"
	"github.com/dmitrijs2005/gophtodo/internal/client/config"
	"github.com/dmitrijs2005/gophtodo/internal/client/controller"
	"github.com/dmitrijs2005/gophtodo/internal/client/services"
	"github.com/dmitrijs2005/gophtodo/internal/client/session"
	"github.com/dmitrijs2005/gophtodo/internal/client/view"
	"github.com/dmitrijs2005/gophtodo/internal/filex"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
)

// App is the wired client: session, API, list controller and renderer, plus
// the terminal it talks to.
type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	session *session.Manager
	api     client.Client
	auth    services.AuthService
	ctl     *controller.Controller
	render  *view.Renderer
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the session store, restores any saved session and builds the
// API client on top of it. in and out are the terminal; the caller owns them.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	a := &App{
		config: c,
		logger: logger,
		reader: bufio.NewReader(in),
		out:    &lockedWriter{w: out},
		render: newRenderer(out),
	}

	var store session.Store = session.NewMemoryStore()
	if c.DBPath != "" {
		path, err := filex.EnsureParentDir(c.DBPath)
		if err != nil {
			return nil, err
		}
		db, err := client.InitDatabase(ctx, path)
		if err != nil {
			logger.Error(ctx, "error initializing database", "path", path, "error", err)
			return nil, err
		}
		a.db = db
		store = session.NewSQLiteStore(db)
	}

	a.session = session.NewManager(store, logger.With("component", "session"))
	if err := a.session.Restore(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}
	a.session.OnChange(func(loggedIn bool) {
		if !loggedIn {
			a.println(view.LoginHint())
		}
	})

	api, err := client.NewHTTPClient(c.APIBaseURL, a.session,
		client.WithTimeout(c.RequestTimeout),
		client.WithUnauthorizedHandler(a.unauthorized),
		client.WithLogger(logger.With("component", "api")),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.api = api
	a.auth = services.NewAuthService(api, a.session, logger.With("component", "auth"))
	a.ctl = a.newController()

	return a, nil
}

// Close releases the session database.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

// Run starts the interactive session and blocks until the user leaves.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to gophtodo (type 'help' for commands)")
	if a.LoggedIn() {
		a.mount(ctx)
	} else {
		a.println(view.LoginHint())
	}
	runREPL(ctx, a, a.prompt, a.reader, a.out)
}

// LoggedIn reports whether a session token is held.
func (a *App) LoggedIn() bool {
	return a.session.LoggedIn()
}

func (a *App) newController() *controller.Controller {
	return controller.New(a.api, controller.Options{
		PageSize:              a.config.PageSize,
		HistoryLimit:          a.config.HistoryLimit,
		DiscardStaleResponses: a.config.DiscardStaleResponses,
		Confirmer:             confirmer{reader: a.reader, w: a.out},
		Logger:                a.logger,
	})
}

// unauthorized runs for every 401: the token is dropped and the session hook
// prints the login hint.
func (a *App) unauthorized(ctx context.Context) {
	a.logger.Warn(ctx, "session rejected by server, logging out")
	_ = a.session.Clear(ctx)
}

// mount loads the first page, stats and users, then shows the board.
func (a *App) mount(ctx context.Context) {
	if err := a.ctl.Mount(ctx); err != nil {
		a.logger.Debug(ctx, "mount finished with errors", "error", err)
	}
	a.showBoard()
}

func (a *App) prompt() string {
	if email := a.session.Email(); a.LoggedIn() && email != "" {
		return fmt.Sprintf("gophtodo (%s)> ", email)
	}
	return "gophtodo> "
}

// showBoard prints the list screen. After a 401 it prints nothing: the login
// hint has already been shown.
func (a *App) showBoard() {
	if !a.LoggedIn() {
		return
	}
	a.println(a.render.Board(a.ctl.State()))
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func newRenderer(out io.Writer) *view.Renderer {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return view.NewRenderer(80, styles.NoTTYStyle)
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		width = 80
	}
	return view.NewRenderer(width, styles.DarkStyle)
}

// lockedWriter serializes writes: the 401 hook can fire from concurrent
// mount fetches.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
