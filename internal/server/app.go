// Package server wires the TukTask API process: storage backend, Redis
// session store, user service, the HTTP API and the gRPC health endpoint.
package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/logging"
	"github.com/dmitrijs2005/tuktask/internal/server/auth"
	"github.com/dmitrijs2005/tuktask/internal/server/config"
	"github.com/dmitrijs2005/tuktask/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tuktask/internal/server/rest"
	"github.com/dmitrijs2005/tuktask/internal/server/services"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/tuktask/internal/server/grpc"
)

const connectTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       repomanager.RepositoryManager
	redis       *redis.Client
	userService *services.UserService
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	repos, err := repomanager.New(ctx, c.StorageDSN, c.DatabaseName, connectTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close(ctx)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	rdb, err := newRedis(ctx, c)
	if err != nil {
		_ = repos.Close(ctx)
		return nil, err
	}

	us := services.NewUserService(repos.Users(), auth.NewSessionStore(rdb), c)

	return &App{config: c, logger: logger, repos: repos, redis: rdb, userService: us}, nil
}

func newRedis(ctx context.Context, c *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	})

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

// Run serves HTTP and gRPC until ctx is cancelled, SIGINT/SIGTERM arrives
// or either listener fails.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	httpServer := rest.NewHTTPServer(app.config.HTTPAddr, app.logger, app.userService)
	grpcServer := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.repos, app.config.HealthCheckInterval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpServer.Run(gctx) })
	g.Go(func() error { return grpcServer.Run(gctx) })

	if err := g.Wait(); err != nil {
		app.logger.Error(ctx, "server stopped with error", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}

// Close releases the store and Redis connections.
func (app *App) Close(ctx context.Context) error {
	var firstErr error
	if err := app.redis.Close(); err != nil {
		firstErr = fmt.Errorf("redis close: %w", err)
	}
	if err := app.repos.Close(ctx); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("storage close: %w", err)
	}
	return firstErr
}
