// Package server wires the FitQuest server together: configuration, logging,
// the PostgreSQL pool and migrations, the services, the HTTP API and the gRPC
// health endpoint. It handles OS signals and shuts everything down gracefully.
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

	"github.com/dmitrijs2005/fitquest/internal/logging"
	"github.com/dmitrijs2005/fitquest/internal/server/config"
	"github.com/dmitrijs2005/fitquest/internal/server/httpapi"
	"github.com/dmitrijs2005/fitquest/internal/server/metrics"
	"github.com/dmitrijs2005/fitquest/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fitquest/internal/server/services"

	gs "github.com/dmitrijs2005/fitquest/internal/server/grpc"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	userService     *services.UserService
	activityService *services.ActivityService
	metrics         *metrics.Metrics
}

func NewApp(c *config.Config) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.New(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	rm := repomanager.NewPostgresRepositoryManager()

	return &App{
		config:          c,
		logger:          logger,
		db:              db,
		repomanager:     rm,
		userService:     services.NewUserService(db, rm, c),
		activityService: services.NewActivityService(db, rm),
		metrics:         metrics.New(),
	}, nil
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

func (app *App) startHTTPServer(ctx context.Context) error {
	s := httpapi.NewServer(app.config, app.logger, app.userService, app.activityService, app.metrics, app.db)
	if err := s.Run(ctx); err != nil {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

func (app *App) startGRPCServer(ctx context.Context) error {
	s := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger, app.db, app.config.HealthCheckInterval)
	if err := s.Run(ctx); err != nil {
		return fmt.Errorf("grpc server error: %w", err)
	}
	return nil
}

// Run applies migrations, then serves until a signal arrives or either server
// fails. The first server error stops the other server and is returned. The
// database pool is closed on return.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	serve := func(start func(context.Context) error) {
		defer wg.Done()
		if err := start(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			errOnce.Do(func() { firstErr = err })
			cancelFunc()
		}
	}

	wg.Add(2)
	go serve(app.startHTTPServer)
	go serve(app.startGRPCServer)

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return firstErr
}
