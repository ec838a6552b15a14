package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/guard"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// sessionView is what the CLI needs from session.Manager.
type sessionView interface {
	guard.StateReader
	Start(ctx context.Context)
	Wait(ctx context.Context) error
	Snapshot() session.State
}

type App struct {
	config         *config.Config
	log            logging.Logger
	authService    services.AuthService
	catalogService services.CatalogService
	cartService    services.CartService
	session        sessionView
	guard          *guard.Guard
	reader         *bufio.Reader
	closers        []func() error

	// protected maps guarded locations to the command that resumes there
	// after a login.
	protected map[string]func(context.Context) error
}

// NewApp opens the local database and builds the API client, the session
// manager and the services on top of it. The session is not restored until
// Run.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	scope, err := url.Parse(c.APIBaseURL)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	jar, err := client.NewPersistentJar(ctx, scope, repos.Metadata, log)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithJar(jar),
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
	)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	mgr := session.NewManager(ctx, repos.Metadata, apiClient, log)
	apiClient.SetTokenSource(mgr.AccessToken)

	a := newApp(
		services.NewAuthService(apiClient, mgr),
		services.NewCatalogService(apiClient),
		services.NewCartService(apiClient, repos.DB),
		mgr,
		bufio.NewReader(os.Stdin),
	)
	a.config = c
	a.log = log
	a.closers = append(a.closers, repos.Close)
	return a, nil
}

func newApp(as services.AuthService, cs services.CatalogService, crt services.CartService, sv sessionView, r *bufio.Reader) *App {
	a := &App{
		log:            logging.Nop(),
		authService:    as,
		catalogService: cs,
		cartService:    crt,
		session:        sv,
		guard:          guard.New(sv),
		reader:         r,
	}
	a.protected = map[string]func(context.Context) error{
		locationWhoAmI:     a.whoAmI,
		locationCartPush:   a.cartPush,
		locationRemoteCart: a.remoteCart,
	}
	return a
}

// Run restores the session in the background and serves the REPL until the
// user exits or stdin closes.
func (a *App) Run(ctx context.Context) error {
	defer a.Close(ctx)

	a.session.Start(ctx)
	printlnFn("Welcome to the storefront CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	a.awaitSession(ctx)
	return nil
}

// sessionGrace bounds how long exit waits for an in-flight session restore.
const sessionGrace = 5 * time.Second

// awaitSession lets a pending restore finish writing the session record
// before the database is closed.
func (a *App) awaitSession(ctx context.Context) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sessionGrace)
	defer cancel()
	if err := a.session.Wait(wctx); err != nil {
		a.log.Warn(ctx, "session restore still running at exit", "err", err)
	}
}

// Close releases the API client and the database.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.authService.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	st := a.session.Snapshot()

	s := "guest"
	switch {
	case !st.Initialized:
		s = "…"
	case st.IsAuthenticated() && st.User != nil && st.User.Email != "":
		s = st.User.Email
	case st.IsAuthenticated():
		s = "signed in"
	}

	if a.cartService.IsOpen() {
		if n, err := a.cartService.Count(context.Background()); err == nil {
			s = fmt.Sprintf("%s, cart: %d", s, n)
		}
	}
	return fmt.Sprintf("(%s)", s)
}
