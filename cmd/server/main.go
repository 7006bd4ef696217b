package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/matchday/internal/config"
	"github.com/playperu/matchday/internal/database"
	"github.com/playperu/matchday/internal/handler/health"
	"github.com/playperu/matchday/internal/migrations"
	"github.com/playperu/matchday/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	checks := map[string]health.Checker{"sqlite": health.SQL(db)}

	// --- Games ---
	store := server.NewSQLiteSaveStore(db)
	broker := server.NewBroker(logger)
	games := server.NewRegistry(store, broker, logger, server.GameOptions{
		LiveMinutesPerSecond: cfg.LiveMinutesPerSecond,
		AutosaveInterval:     cfg.AutosaveIntervalDays,
		Seed:                 cfg.SimSeed,
	})
	defer games.Close()

	if err := server.SeedDemo(ctx, logger, games, cfg.DemoSlot); err != nil {
		return fmt.Errorf("seeding demo career: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	// --- Redis (optional) ---
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis")

		checks["redis"] = health.Redis(rdb)
		relay := server.NewRedisRelay(rdb, broker, logger)
		g.Go(func() error {
			return relay.Run(gctx)
		})
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Store:       store,
		Games:       games,
		Broker:      broker,
		CORSOrigins: cfg.CORSOrigins,
		SPADir:      cfg.SPADir,
		Mount: func(r chi.Router) {
			r.Mount("/healthz", health.NewHandler(logger, checks).Routes())
		},
	})

	// --- Run ---
	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		if err := srv.Shutdown(context.Background()); err != nil {
			return err
		}

		// Flush careers so nothing since the last autosave is lost.
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := games.SaveAll(flushCtx); err != nil {
			return fmt.Errorf("saving careers: %w", err)
		}
		logger.Info("careers saved")
		return nil
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}
