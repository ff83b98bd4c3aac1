package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/guestcart"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	api      *client.HTTPClient
	session  *services.SessionService
	cart     *services.CartService
	products *services.ProductService
	logger   logging.Logger

	reader *bufio.Reader
	out    io.Writer

	started sync.WaitGroup
}

// NewApp opens the local database and wires the services. Logs go to
// stderr so they do not interleave with the shell output.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithRateLimit(c.RequestsPerSecond, 1),
		client.WithLogger(logger),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return newApp(c, db, api, logger, bufio.NewReader(os.Stdin), os.Stdout), nil
}

func newApp(c *config.Config, db *sql.DB, api *client.HTTPClient, logger logging.Logger, in *bufio.Reader, out io.Writer) *App {
	meta := metadata.NewSQLiteRepository(db)
	session := services.NewSessionService(api, credentials.NewStore(meta), logger,
		services.WithRollbackOnProfileFailure(c.RollbackOnProfileFailure))
	cart := services.NewCartService(api, guestcart.NewRepository(meta, logger), session, logger)

	if c.InvalidateOnUnauthorized {
		api.OnUnauthorized(session.Invalidate)
	}

	return &App{
		config:   c,
		db:       db,
		api:      api,
		session:  session,
		cart:     cart,
		products: services.NewProductService(api, logger),
		logger:   logger.With("module", "cli"),
		reader:   in,
		out:      out,
	}
}

// Start restores the persisted session and then loads the cart, in the
// background. Wait blocks until that is done.
func (a *App) Start(ctx context.Context) {
	a.started.Add(1)
	go func() {
		defer a.started.Done()
		a.session.Restore(ctx)
		a.cart.Load(ctx)
		a.logger.Debug(ctx, "startup done", "status", a.session.Status().String(), "items", a.cart.ItemCount())
	}()
}

func (a *App) Wait() {
	a.started.Wait()
}

// Run starts the background startup and then serves the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the storefront shell (type 'help' for commands)")
	a.Start(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
	a.Wait()
}

// Close releases the local database.
func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	who := "guest"
	switch a.session.Status() {
	case services.StatusAuthenticating:
		who = "..."
	case services.StatusAuthenticated:
		who = "?"
		if u := a.session.User(); u != nil {
			who = u.Email
		}
	}
	return fmt.Sprintf("(%s, cart: %d)", who, a.cart.ItemCount())
}
