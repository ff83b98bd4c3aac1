// Package server wires and runs the development API server: in-memory
// repositories, the account, catalogue and cart services, and the HTTP
// router. It stops gracefully on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/dmitrijs2005/storefront/internal/server/api"
	"github.com/dmitrijs2005/storefront/internal/server/config"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/products"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/storefront/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	handler http.Handler
}

// NewApp builds the server from c. An empty SecretKey is replaced by a
// random one.
func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, err
	}

	secret := c.SecretKey
	if secret == "" {
		if secret, err = common.MakeRandHexString(32); err != nil {
			return nil, fmt.Errorf("error generating secret key: %w", err)
		}
		logger.Warn(context.Background(), "no secret key configured, tokens will not survive a restart")
	}

	return &App{
		config:  c,
		logger:  logger,
		handler: NewHandler(c, secret, logger, products.DemoCatalogue()),
	}, nil
}

// NewHandler assembles the HTTP handler over fresh in-memory storage holding
// catalogue.
func NewHandler(c *config.Config, secret string, logger logging.Logger, catalogue []models.Product) http.Handler {
	rm := repomanager.NewMemoryManager(catalogue)

	h := api.NewHandler(
		services.NewUserService(rm.Users(), secret, c.TokenValidityDuration, 0),
		services.NewCatalogService(rm.Products()),
		services.NewCartService(rm.Carts(), rm.Products()),
		logger.With("module", "api"),
	)

	return api.NewRouter(h, api.RouterOptions{
		AllowedOrigins: c.AllowedOrigins,
		RateLimit:      c.RateLimit,
		RateBurst:      c.RateBurst,
	})
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// serve accepts connections on l until ctx is done, then shuts down.
func (app *App) serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", l.Addr().String())

	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves until ctx is canceled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	l, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return err
	}

	var (
		wg     sync.WaitGroup
		runErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if runErr = app.serve(ctx, l); runErr != nil {
			app.logger.Error(ctx, runErr.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
	return runErr
}
