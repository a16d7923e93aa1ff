package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"smartnote/internal/server/adapters/cache"
	httpServer "smartnote/internal/server/adapters/http"
	"smartnote/internal/server/adapters/llm"
	"smartnote/internal/server/adapters/memory"
	postgresRepo "smartnote/internal/server/adapters/postgres"
	"smartnote/internal/server/app"
	"smartnote/internal/server/config"
	cachePorts "smartnote/internal/server/ports/cache"
	llmPorts "smartnote/internal/server/ports/llm"
	"smartnote/internal/server/ports/repositories"
	"smartnote/pkg/db/postgres"
	"smartnote/pkg/logger"
	"smartnote/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "SERVER_LOGGER_MODE"
	EnvLoggerLevel = "SERVER_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrConnectPostgres      = "failed to connect to postgres"
	ErrRunMigrations        = "failed to run migrations"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "smartnote server started"
	LogServiceShutdownDone = "smartnote server shutdown complete"
	LogInitStorage         = "initializing storage"
	LogInitCache           = "initializing cache"
	LogInitCompleter       = "initializing completion client"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogChatOffline         = "completion API key is empty, chat runs in offline mode"
)

func main() {
	_ = godotenv.Load()

	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitStorage, zap.String("backend", cfg.Storage.Backend))

		var (
			noteRepo     repositories.NoteRepository
			categoryRepo repositories.CategoryRepository
			database     *postgres.Database
		)

		switch cfg.Storage.Backend {
		case config.StoragePostgres:
			if err := postgres.MigrateDSN(ctx, cfg.Storage.PostgresDSN, cfg.Storage.MigrationsPath); err != nil {
				log.Error(ctx, ErrRunMigrations, zap.Error(err))
				exitCode = 1
				return
			}

			database, err = postgres.New(ctx, cfg.Storage.PostgresDSN, cfg.Storage.MinConns, cfg.Storage.MaxConns)
			if err != nil {
				log.Error(ctx, ErrConnectPostgres, zap.Error(err))
				exitCode = 1
				return
			}

			repos := postgresRepo.NewRepositories(database.Pool())
			noteRepo = repos.Notes()
			categoryRepo = repos.Categories()
		default:
			noteRepo = memory.NewNoteRepository()
			categoryRepo = memory.NewCategoryRepository()
		}

		log.Info(ctx, LogInitCache, zap.Bool("redis", cfg.Redis.Enabled))
		var notesCache cachePorts.Cache
		if cfg.Redis.Enabled {
			notesCache, err = cache.NewRedisCache(ctx, &cfg.Redis)
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				exitCode = 1
				return
			}
		} else {
			notesCache = cache.NewNoopCache()
		}

		log.Info(ctx, LogInitCompleter)
		var completer llmPorts.Completer
		if cfg.Chat.APIKey != "" {
			completer = llm.NewOpenAIClient(&cfg.Chat)
		} else {
			log.Warn(ctx, LogChatOffline)
			completer = llm.NewCannedClient()
		}

		log.Info(ctx, LogInitUseCases)
		notesUC := app.NewNoteUseCase(noteRepo, notesCache)
		categoriesUC := app.NewCategoryUseCase(categoryRepo)
		chatUC := app.NewChatUseCase(completer, noteRepo, categoryRepo)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, cfg.Auth.JWTSecret, notesUC, categoriesUC, chatUC)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			shutdown.Hook{Name: "http", Fn: func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			}},
			shutdown.Hook{Name: "cache", Fn: func(ctx context.Context) error {
				return notesCache.Close()
			}},
			shutdown.Hook{Name: "database", Fn: func(ctx context.Context) error {
				if database != nil {
					database.Close(ctx)
				}
				return nil
			}},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
