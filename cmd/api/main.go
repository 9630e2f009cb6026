// Copyright (c) 2026 Inkwell Platform. All rights reserved.

/*
Api is the entry point for the contentcore HTTP API server.

The server provides the retrieval and moderation backend for the contentcore
personal content platform: articles, images, songs and taxonomies behind a
keyword/semantic/hybrid search engine, plus a comment/article-request/
music-wish moderation pipeline whose approved tasks are handed off to an
asynchronous AI-runner supervisor.

Usage:

	go run cmd/api/main.go [flags]

The flags/environment variables are:

	SERVER_PORT     Port to listen on (default: 8080)
	ENVIRONMENT     deployment environment (development, production)
	DATABASE_URL    Postgres connection string (required)
	REDIS_URL       Redis connection string (required)

The full set of comment-AI-runner and analytics-retention variables is
documented in internal/platform/config.

Startup Sequence:

 1. Logger: Initialize structured JSON logging (slog).
 2. Config: Load and validate environment variables.
 3. Storage: Establish connections to Postgres and Redis.
 4. Migration: Run idempotent schema updates.
 5. Wiring: Inject dependencies into domain services/handlers.
 6. Worker: Start the AI runner supervisor draining the task queue.
 7. Server: Bind HTTP listener and handle graceful shutdown.

No business logic lives here. This file is strictly for orchestration and wiring.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/inkwell-platform/contentcore/internal/api"
	"github.com/inkwell-platform/contentcore/internal/core/airunner"
	"github.com/inkwell-platform/contentcore/internal/core/analytics"
	"github.com/inkwell-platform/contentcore/internal/core/article"
	"github.com/inkwell-platform/contentcore/internal/core/image"
	"github.com/inkwell-platform/contentcore/internal/core/publish"
	"github.com/inkwell-platform/contentcore/internal/core/search"
	"github.com/inkwell-platform/contentcore/internal/core/search/planner"
	"github.com/inkwell-platform/contentcore/internal/core/song"
	"github.com/inkwell-platform/contentcore/internal/core/task"
	"github.com/inkwell-platform/contentcore/internal/core/taxonomy"
	"github.com/inkwell-platform/contentcore/internal/platform/cache"
	"github.com/inkwell-platform/contentcore/internal/platform/config"
	"github.com/inkwell-platform/contentcore/internal/platform/constants"
	"github.com/inkwell-platform/contentcore/internal/platform/embedding"
	"github.com/inkwell-platform/contentcore/internal/platform/migration"
	pgstore "github.com/inkwell-platform/contentcore/internal/platform/postgres"
	redisstore "github.com/inkwell-platform/contentcore/internal/platform/redis"
	"github.com/inkwell-platform/contentcore/internal/platform/sec"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// # 1. Logger
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries for trace correlation
	log := rawLog.With(slog.String("app", "contentcore"))
	slog.SetDefault(log)

	log.Info("[contentcore] service_initializing")

	// # 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Adjust log level if debug mode is explicitly enabled
	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "contentcore"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. A 30s deadline prevents the app from hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// # 3. PostgreSQL
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// # 4. Redis
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// # 5. Migrations
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// # 6. Platform Services
	tokenSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AdminIssuer)
	if err != nil {
		return fmt.Errorf("initialize admin token service: %w", err)
	}
	redisCache := cache.New(rdb)

	// # 7. Health Wiring
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// # 8. Task Submission Queue
	//
	// The single process-wide bounded channel §5 describes: task.Service
	// offers task ids onto it when a task enters "running"; the AI runner
	// supervisor drains it below.
	taskQueue := make(chan string, cfg.TaskQueueCapacity)

	// # 9. Domain Wiring
	taxonomyStore := taxonomy.NewStore(pool)
	taxonomySvc := taxonomy.NewService(taxonomyStore, redisCache)
	taxonomyHdl := taxonomy.NewHandlers(taxonomySvc)

	embedder := embedding.NewHashEmbedder()

	articleRepo := article.NewPostgresRepository(pool)
	articleSvc := article.NewService(articleRepo, taxonomyStore, log)
	articleHdl := article.NewHandler(articleSvc)

	// No joint text/image encoder is configured by default — text-to-image
	// search stays disabled until a real joint model is wired in; image ANN
	// search (by image id) does not need one.
	imageRepo := image.NewPostgresRepository(pool)
	imageSvc := image.NewService(imageRepo, nil, log)
	imageHdl := image.NewHandler(imageSvc)

	songRepo := song.NewPostgresRepository(pool)
	songSvc := song.NewService(songRepo, log)
	songHdl := song.NewHandler(songSvc)

	taskRepo := task.NewPostgresRepository(pool)
	taskSvc := task.NewService(taskRepo, taskQueue, log)
	taskHdl := task.NewHandler(taskSvc)

	publishSvc := publish.NewService(publish.NewPostgresRepository(pool), cfg.CommentAuthorSalt)
	publishHdl := publish.NewHandler(publishSvc)

	runRepo := airunner.NewPostgresRepository(pool)
	runHdl := airunner.NewHandler(runRepo)

	analyticsSvc := analytics.NewService(
		analytics.NewPostgresRepository(pool),
		cfg.ViewDedupeWindowSeconds,
		cfg.TrendMaxDays,
		cfg.ViewRetentionDays,
		cfg.BehaviorEventRetentionDays,
		log,
	)
	analyticsHdl := analytics.NewHandler(analyticsSvc)

	searchPlanner := planner.New(log)
	searchEngine := search.NewEngine(pool, embedder, embedder, searchPlanner, log)
	searchHdl := search.NewHandler(searchEngine)

	// Create a background context for the whole application lifecycle, used
	// by both the AI runner supervisor goroutine below and the router's
	// per-IP rate limiter cleanup loop.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// # 10. AI Runner Supervisor
	//
	// Drains taskQueue for the lifetime of appCtx; each dequeued task is
	// processed under its own panic-recovery boundary (see Supervisor.Run)
	// so one bad task never takes the worker down.
	var runnerArgs []string
	if cfg.CommentAIRunnerArgs != "" {
		runnerArgs = strings.Fields(cfg.CommentAIRunnerArgs)
	}
	supervisor := airunner.NewSupervisor(airunner.SupervisorConfig{
		ProcessConfig: airunner.ProcessConfig{
			RunnerProgram: cfg.CommentAIRunnerProgram,
			RunnerArgs:    runnerArgs,
			Timeout:       cfg.RunnerTimeout(),
			Workdir:       cfg.CommentAIWorkdir,
			ResultDir:     cfg.CommentAIResultDir,
			SkillPath:     cfg.CommentAISkillPath,
			ContentDBPath: cfg.DatabaseURL,
		},
		ContentAPIBase:         cfg.CommentAIContentAPIBase,
		CleanupResultOnSuccess: cfg.CommentAIResultCleanupOnSuccess,
		StreamFallbackEnabled:  cfg.CommentAIStreamFallbackEnabled,
	}, taskSvc, taskRepo, runRepo, publishSvc, log)

	go supervisor.Run(appCtx, taskQueue)

	// # 11. API Assembly
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Article:   articleHdl,
		Image:     imageHdl,
		Song:      songHdl,
		Taxonomy:  taxonomyHdl,
		Task:      taskHdl,
		Publish:   publishHdl,
		AiRunner:  runHdl,
		Analytics: analyticsHdl,
		Search:    searchHdl,
	}

	server := api.NewServer(appCtx, cfg, log, tokenSvc, handlers)

	// # 12. Lifecycle Handling
	shutdownErr := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownErr <- fmt.Errorf("http_server_crash: %w", err)
		}
	}()

	log.Info("contentcore_api_running", slog.String("port", cfg.ServerPort))

	// Block until signal or error
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-shutdownErr:
		return err
	}

	// Start Graceful Shutdown Sequence
	appCancel() // Signal the AI runner supervisor to stop draining the queue.

	log.Info("shutting_down_api_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("server_shutdown_failed: %w", err)
	}

	log.Info("graceful_shutdown_complete")
	return nil
}
