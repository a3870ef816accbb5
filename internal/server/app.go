// Package server wires configuration, logging, the store and the services
// into the HTTP API and the gRPC health endpoint, and runs them until a
// termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ganatecnica/obradiary/internal/logging"
	"github.com/ganatecnica/obradiary/internal/server/config"
	"github.com/ganatecnica/obradiary/internal/server/repositories/repomanager"
	"github.com/ganatecnica/obradiary/internal/server/rest"
	"github.com/ganatecnica/obradiary/internal/server/services"

	gs "github.com/ganatecnica/obradiary/internal/server/grpc"
)

// openStore is swapped in tests.
var openStore = repomanager.Open

type App struct {
	config      *config.Config
	logger      logging.Logger
	loc         *time.Location
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	loc, err := c.Location()
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}

	db, rm, err := openStore(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{config: c, logger: logger, loc: loc, db: db, repomanager: rm}, nil
}

// Migrate applies pending schema migrations.
func (app *App) Migrate(ctx context.Context) error {
	app.logger.Info(ctx, "Running migrations...", "driver", app.config.DatabaseDriver)
	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (app *App) Close() error {
	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	return app.db.Close()
}

// Handler builds the HTTP API over the app's store.
func (app *App) Handler() *rest.Handler {
	return rest.NewHandler(rest.Services{
		Diary:     services.NewDiaryService(app.db, app.repomanager, app.loc),
		Reports:   services.NewReportService(app.db, app.repomanager, app.loc),
		Projects:  services.NewProjectService(app.db, app.repomanager, app.loc),
		Personnel: services.NewPersonnelService(app.db, app.repomanager),
		Documents: services.NewDocumentService(app.db, app.repomanager, app.config),
	}, app.loc, app.logger)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.config.HTTPAddr, app.Handler().Routes(app.config.RequestTimeout), app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewHealthServer(app.config.HealthAddrGRPC, app.db, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run migrates the store and serves until ctx is cancelled or a signal
// arrives. A failing server stops the other one.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.Migrate(ctx); err != nil {
		return err
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return nil
}
