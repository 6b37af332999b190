package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/ttamm/gowallet/internal/adapter/http"
	"github.com/ttamm/gowallet/internal/adapter/http/handler"
	memoryRepo "github.com/ttamm/gowallet/internal/adapter/repository/memory"
	postgresRepo "github.com/ttamm/gowallet/internal/adapter/repository/postgres"
	redisRepo "github.com/ttamm/gowallet/internal/adapter/repository/redis"
	"github.com/ttamm/gowallet/internal/infrastructure/config"
	"github.com/ttamm/gowallet/internal/infrastructure/id"
	"github.com/ttamm/gowallet/internal/infrastructure/logger"
	"github.com/ttamm/gowallet/internal/infrastructure/postgres"
	"github.com/ttamm/gowallet/internal/infrastructure/redis"
	"github.com/ttamm/gowallet/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Storage handles are opened here and passed down explicitly; their
	// lifecycle belongs to main, not to the packages using them.
	var (
		accounts  usecase.AccountStore
		transfers usecase.TransferLog
		txManager usecase.TxManager
		storage   handler.Pinger
	)

	switch cfg.Storage {
	case "memory":
		store := memoryRepo.NewStore()
		accounts = store
		transfers = store
		txManager = store
		storage = store

		log.Info().Msg("using in-memory storage")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		accounts = postgresRepo.NewAccountStore(pool)
		transfers = postgresRepo.NewTransferLog(pool)
		txManager = postgresRepo.NewTxManager(pool)
		storage = pool

		log.Info().Msg("connected to postgres")
	}

	var idempotencyStore usecase.IdempotencyStore

	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()

		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)

		log.Info().Msg("connected to redis, idempotency replay enabled")
	}

	idGen := id.NewULIDGenerator()
	accountUC := usecase.NewAccountUseCase(accounts, idGen)
	transferUC := usecase.NewTransferUseCase(txManager, accounts, transfers, idGen)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		HealthHandler:    handler.NewHealthHandler(storage),
		Logger:           log.Logger,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
