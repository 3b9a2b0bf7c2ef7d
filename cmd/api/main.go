package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H4ckEd666/Twitter-clone-app/internal/config"
	"github.com/H4ckEd666/Twitter-clone-app/internal/db"
	"github.com/H4ckEd666/Twitter-clone-app/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig      func() config.Config
	connectPostgres func(config.Config) (*pgxpool.Pool, error)
	connectRedis    func(config.Config) *redis.Client
	connectMongo    func(config.Config) (*mongo.Client, error)
	migrate         func(context.Context, db.Querier) error
	notify          func(chan<- os.Signal, ...os.Signal)
	run             func(context.Context, config.Config, server.Deps, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:      config.Load,
		connectPostgres: db.ConnectPostgres,
		connectRedis:    db.ConnectRedis,
		connectMongo:    db.ConnectMongo,
		migrate:         db.Migrate,
		notify:          signal.Notify,
		run:             Run,
	}
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func realMain(deps mainDeps) {
	cfg := deps.loadConfig()
	setupLogging(cfg.LogLevel)
	ctx := context.Background()

	pg, err := deps.connectPostgres(cfg)
	if err != nil {
		log.Error().Err(err).Msg("postgres connection failed")
		return
	}
	if err := deps.migrate(ctx, pg); err != nil {
		log.Error().Err(err).Msg("migrations failed")
		pg.Close()
		return
	}

	rdb := deps.connectRedis(cfg)
	if rdb == nil {
		log.Warn().Msg("redis disabled, presence is process-local")
	}

	var mdb *mongo.Database
	mc, err := deps.connectMongo(cfg)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("mongo connection failed, media storage disabled")
	case mc == nil:
		log.Warn().Msg("mongo disabled, media storage unavailable")
	default:
		mdb = mc.Database(cfg.MongoDatabase)
	}

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(ctx, cfg, server.Deps{DB: pg, Redis: rdb, Mongo: mdb}, signals, nil); err != nil {
		log.Error().Err(err).Msg("server exited with error")
	}
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

var shutdownFn = func(app *fiber.App, ctx context.Context) error {
	return app.ShutdownWithContext(ctx)
}

// Run starts the HTTP server and waits for termination signals.
func Run(ctx context.Context, cfg config.Config, deps server.Deps, signals <-chan os.Signal, listen ListenFunc) error {
	srv, err := server.NewServer(ctx, cfg, deps)
	if err != nil {
		closeDeps(deps)
		return err
	}

	if listen == nil {
		listen = defaultListen
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdownFn(srv.App, shutdownCtx); err != nil {
		return err
	}
	if err := srv.Stream.Close(); err != nil {
		log.Warn().Err(err).Msg("realtime hub close")
	}
	closeDeps(deps)
	return nil
}

func closeDeps(deps server.Deps) {
	if pool, ok := deps.DB.(*pgxpool.Pool); ok && pool != nil {
		pool.Close()
	}
	if deps.Redis != nil {
		_ = deps.Redis.Close()
	}
	if deps.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = deps.Mongo.Client().Disconnect(ctx)
	}
}
