// Package server wires configuration, storage, the reward services and the
// gRPC endpoint together and runs them until a shutdown signal arrives.
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

	"github.com/dmitrijs2005/reviewvault/internal/logging"
	"github.com/dmitrijs2005/reviewvault/internal/server/authority"
	"github.com/dmitrijs2005/reviewvault/internal/server/config"
	"github.com/dmitrijs2005/reviewvault/internal/server/receipts"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/reviewvault/internal/server/services"
	"github.com/jonboulle/clockwork"

	gs "github.com/dmitrijs2005/reviewvault/internal/server/grpc"
)

const pingTimeout = 5 * time.Second

// Seams for tests.
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	runMigrations = func(ctx context.Context, m repomanager.RepositoryManager, db *sql.DB) error {
		return m.RunMigrations(ctx, db)
	}
	newReceiptStore = receipts.New
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	movieService  *services.MovieService
	reviewService *services.ReviewService
	rewardService *services.RewardService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB) (*App, error) {

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("repository manager init error: %w", err)
	}

	if err := runMigrations(ctx, rm, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	capsule, err := authority.NewCapsuleFromHex(c.AuthoritySeed)
	if err != nil {
		return nil, fmt.Errorf("authority init error: %w", err)
	}

	store, err := newReceiptStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("receipt store init error: %w", err)
	}

	clock := clockwork.NewRealClock()

	vs := services.NewVaultService(db, rm, capsule, clock)
	rws := services.NewRewardService(db, rm, vs, capsule, store, clock, logger)
	ms := services.NewMovieService(db, rm, c.AdminUserID)
	rvs := services.NewReviewService(db, rm, rws)

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		movieService:  ms,
		reviewService: rvs,
		rewardService: rws,
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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger,
		app.movieService, app.reviewService, app.rewardService, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

// Run serves until ctx is cancelled or a shutdown signal arrives, then
// closes the database pool.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
