package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/planinfo-service/internal/config"
	"github.com/planinfo-service/internal/domain/repository"
	"github.com/planinfo-service/internal/infrastructure/mapbox"
	"github.com/planinfo-service/internal/pkg/logger"
	"github.com/planinfo-service/internal/repository/cache"
	redisRepo "github.com/planinfo-service/internal/repository/redis"
	"github.com/planinfo-service/internal/usecase"
	"github.com/planinfo-service/internal/worker"
	"github.com/planinfo-service/internal/worker/plan"
	"github.com/planinfo-service/internal/zoning"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		return 0
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Plan Lookup Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Duration("stream_read_timeout", cfg.Worker.StreamReadTimeout),
		zap.Duration("shutdown_timeout", cfg.Worker.ShutdownTimeout))

	// 3. Connect to Redis: one client for counters, one for blocking stream reads
	redisClient, err := cache.NewRedis(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	streamClient, err := cache.NewRedisStreams(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis streams", zap.Error(err))
	}
	defer func() {
		if err := streamClient.Close(); err != nil {
			log.Error("Failed to close Redis streams connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories
	resolver, err := zoning.NewIndexedResolver(zoning.KristiansandRegions(), zoning.KristiansandDefaultPlan())
	if err != nil {
		log.Fatal("Failed to build zone index", zap.Error(err))
	}

	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(streamClient, log, cfg.Worker.StreamReadTimeout)

	var geocoder repository.GeocoderRepository
	if cfg.GeocoderEnabled() {
		geocoder = mapbox.NewGeocoder(&cfg.Mapbox, logger.Named(log, "mapbox"))
	}

	// 5. Initialize use cases
	planUC := usecase.NewPlanUseCase(resolver, geocoder, cacheRepo, log)

	// 6. Initialize workers
	lookupWorker := plan.NewLookupWorker(
		streamRepo,
		planUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	workerManager := worker.NewWorkerManager(logger.Named(log, "worker"), cfg.Worker.ShutdownTimeout)
	workerManager.Register(lookupWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	exitCode := 0
	select {
	case <-sigChan:
		log.Info("Received shutdown signal")
	case <-workerManager.Done():
		if err := workerManager.Err(); err != nil {
			log.Error("Workers exited with error", zap.Error(err))
			exitCode = 1
		}
	}

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
	return exitCode
}
