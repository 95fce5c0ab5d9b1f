package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/parkjy/idol-tycoon-go/internal/config"
	"github.com/parkjy/idol-tycoon-go/internal/engine"
	"github.com/parkjy/idol-tycoon-go/internal/server"
	"github.com/parkjy/idol-tycoon-go/internal/service"
	"github.com/parkjy/idol-tycoon-go/internal/service/cache"
	"github.com/parkjy/idol-tycoon-go/internal/service/database"
	"github.com/parkjy/idol-tycoon-go/internal/service/records"
	"github.com/parkjy/idol-tycoon-go/internal/session"
)

// Container bundles the assembled services behind the HTTP server.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	Server *server.Server

	closers []func()
}

// Close tears the infrastructure down in reverse build order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles the full dependency graph. All heavy-weight initialization
// (AI clients, optional cache and database) happens here; on any failure the
// already-built pieces are closed before returning.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	sessions := session.NewManager(logger)
	closers = append(closers, sessions.Close)

	rng := engine.NewRNG()
	resolver := engine.NewResolver(rng, logger)

	var generator service.Generator
	if cfg.Game.ForceMock {
		generator = service.NewMockGenerator(rng, logger)
	} else {
		generator, err = service.NewModelManager(ctx, service.ModelManagerConfig{
			GeminiAPIKey:   cfg.Gemini.APIKey,
			OpenAIAPIKey:   cfg.OpenAI.APIKey,
			EnableFallback: cfg.OpenAI.EnableFallback,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create model manager: %w", err)
		}
	}

	castingSvc := service.NewCastingService(generator, rng, logger)
	producerSvc := service.NewProducerService(generator, nil, logger)
	judgeSvc := service.NewJudgeService(generator, rng, logger)
	eventSvc := service.NewEventService(generator, rng, logger)

	// The records feature is optional; without it no external store is
	// dialed and the leaderboard action reports it as disabled.
	var recordsSvc *records.Service
	if cfg.Records.Enabled {
		cacheSvc, cacheErr := cache.NewCacheService(cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if cacheErr != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", cacheErr)
		}
		closers = append(closers, func() { _ = cacheSvc.Close() })

		postgresSvc, pgErr := database.NewPostgresService(database.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
		}, logger)
		if pgErr != nil {
			return nil, fmt.Errorf("failed to create postgres service: %w", pgErr)
		}
		closers = append(closers, func() { _ = postgresSvc.Close() })

		store := records.NewPostgresRunStore(postgresSvc.GetDB(), logger)
		if schemaErr := store.EnsureSchema(ctx); schemaErr != nil {
			return nil, fmt.Errorf("failed to ensure records schema: %w", schemaErr)
		}

		recordsSvc = records.NewService(store, cacheSvc, logger)
		logger.Info("Records feature enabled")
	}

	gateway := server.NewGateway(
		sessions,
		resolver,
		castingSvc,
		producerSvc,
		judgeSvc,
		eventSvc,
		recordsSvc,
		cfg.Game.DefaultLocale,
		logger,
	)

	srv := server.NewServer(cfg.Server.Addr, gateway, sessions, logger)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Server:  srv,
		closers: closers,
	}, nil
}
