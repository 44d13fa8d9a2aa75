// Package server wires configuration, storage, services and the HTTP server
// into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/codereviewer/internal/logging"
	"github.com/dmitrijs2005/codereviewer/internal/server/archive"
	"github.com/dmitrijs2005/codereviewer/internal/server/config"
	"github.com/dmitrijs2005/codereviewer/internal/server/inference"
	"github.com/dmitrijs2005/codereviewer/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/codereviewer/internal/server/rest"
	"github.com/dmitrijs2005/codereviewer/internal/server/services"
)

// seams for tests
var (
	openPostgres = repomanager.OpenPostgres
	newS3Archive = func(ctx context.Context, c *config.Config) (archive.Archive, error) {
		return archive.NewS3Archive(ctx, c)
	}
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	userService   *services.UserService
	reviewService *services.ReviewService
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))

	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)

	if c.DatabaseDSN != "" {
		var err error
		db, err = openPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	} else {
		logger.Warn(ctx, "no database DSN configured, using in-memory user store")
		rm = repomanager.NewInMemoryRepositoryManager()
	}

	var arch archive.Archive = archive.NopArchive{}
	if c.ArchiveEnabled() {
		a, err := newS3Archive(ctx, c)
		if err != nil {
			if db != nil {
				_ = db.Close()
			}
			return nil, fmt.Errorf("archive init error: %w", err)
		}
		arch = a
	}

	us := services.NewUserService(db, rm, c)
	rs := services.NewReviewService(inference.NewClient(c.InferenceURL, c.InferenceTimeout), arch, logger)

	return &App{config: c, logger: logger, db: db, userService: us, reviewService: rs}, nil
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

	s := rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.reviewService, app.config.StaticDir)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled or a
// termination signal arrives.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close", "error", err)
		}
	}

	app.logger.Info(ctx, "App stopped")
}
