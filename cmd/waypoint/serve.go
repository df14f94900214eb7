package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/waypointhq/waypoint/internal/config"
	"github.com/waypointhq/waypoint/internal/db"
	"github.com/waypointhq/waypoint/internal/enrich"
	"github.com/waypointhq/waypoint/internal/handlers"
	"github.com/waypointhq/waypoint/internal/healthcheck"
	"github.com/waypointhq/waypoint/internal/images"
	"github.com/waypointhq/waypoint/internal/logger"
	"github.com/waypointhq/waypoint/internal/mediacache"
	"github.com/waypointhq/waypoint/internal/message"
	"github.com/waypointhq/waypoint/internal/server"
	"github.com/waypointhq/waypoint/internal/share"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideDBPool,
			mediacache.NewService,
			provideSweeper,
			provideImageResolver,
			provideEnricher,
			provideMessageService,
			provideAbsolutizer,
			provideHealthCheckers,
			provideServerHandler(handlers.NewHealthHandler),
			provideServerHandler(handlers.NewPingHandler),
			provideServerHandler(handlers.NewReplyHandler),
			provideServerHandler(handlers.NewShareHandler),
			provideServer,
		),
		fx.Invoke(
			startSweeper,
			startServer,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideConfig() (config.Config, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideDBPool(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	if err := db.Migrate(cfg.Postgres); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	pool, err := db.Open(context.Background(), cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	lc.Append(fx.Hook{OnStop: func(ctx context.Context) error { pool.Close(); return nil }})
	return pool, nil
}

func provideSweeper(log *slog.Logger, cache *mediacache.Service, cfg config.Config) *mediacache.Sweeper {
	retention := time.Duration(cfg.Cache.RetentionDays) * 24 * time.Hour
	return mediacache.NewSweeper(log, cache, retention)
}

func provideImageResolver(log *slog.Logger, cfg config.Config, cache *mediacache.Service) *images.Resolver {
	timeout := time.Duration(cfg.Images.TimeoutSeconds) * time.Second
	var providers []images.SearchClient
	if cfg.Images.PexelsAPIKey != "" {
		providers = append(providers, images.NewPexelsClient(cfg.Images.PexelsAPIKey, cfg.Images.PexelsBaseURL, timeout))
	}
	if cfg.Images.UnsplashAPIKey != "" {
		providers = append(providers, images.NewUnsplashClient(cfg.Images.UnsplashAPIKey, cfg.Images.UnsplashBaseURL, timeout))
	}
	return images.NewResolver(log, cache, cache, providers, cfg.Images.CacheSize)
}

func provideEnricher(log *slog.Logger, resolver *images.Resolver) *enrich.Service {
	return enrich.NewService(log, resolver)
}

func provideMessageService(log *slog.Logger, pool *pgxpool.Pool) message.Service {
	return message.NewService(log, pool)
}

func provideAbsolutizer(cfg config.Config) *share.Absolutizer {
	return share.NewAbsolutizer(cfg.Share.PublicBaseURL)
}

func provideHealthCheckers(pool *pgxpool.Pool, resolver *images.Resolver) []healthcheck.Checker {
	return []healthcheck.Checker{
		healthcheck.NewPostgresChecker(pool),
		healthcheck.NewImagesChecker(resolver),
	}
}

type serverParams struct {
	fx.In

	Config   config.Config
	Handlers []server.Handler `group:"server_handlers"`
}

func provideServer(p serverParams) *server.Server {
	return server.NewServer(p.Config.Server.Addr, p.Handlers)
}

func startSweeper(lc fx.Lifecycle, sweeper *mediacache.Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error { return sweeper.Start() },
		OnStop:  func(ctx context.Context) error { sweeper.Stop(); return nil },
	})
}

func startServer(lc fx.Lifecycle, log *slog.Logger, srv *server.Server, cfg config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Error("server stopped", slog.Any("error", err))
				}
			}()
			log.Info("server listening", slog.String("addr", cfg.Server.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
