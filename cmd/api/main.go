package main

// @title Planinfo API
// @version 1.0.0
// @description Zoning plan lookup for the Kristiansand municipality plus a small user registry.
// @description
// @description Features:
// @description - Resolve the regulation plan covering a coordinate
// @description - Address search through Mapbox with plan resolution of the best hit
// @description - Batch lookups and the list of known plan regions
// @description - Map view configuration with WMS overlays
// @description - User CRUD backed by PostgreSQL with a Redis cache

// @contact.name API Support
// @contact.email support@planinfo.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/planinfo-service/docs"
	"github.com/planinfo-service/internal/config"
	httpDelivery "github.com/planinfo-service/internal/delivery/http"
	"github.com/planinfo-service/internal/delivery/http/handler"
	"github.com/planinfo-service/internal/domain/repository"
	"github.com/planinfo-service/internal/infrastructure/mapbox"
	"github.com/planinfo-service/internal/pkg/logger"
	"github.com/planinfo-service/internal/repository/cache"
	"github.com/planinfo-service/internal/repository/postgres"
	"github.com/planinfo-service/internal/usecase"
	"github.com/planinfo-service/internal/zoning"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Planinfo API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("geocoder_enabled", cfg.GeocoderEnabled()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Zone index
	resolver, err := zoning.NewIndexedResolver(zoning.KristiansandRegions(), zoning.KristiansandDefaultPlan())
	if err != nil {
		log.Fatal("Failed to build zone index", zap.Error(err))
	}
	log.Info("Zone index built", zap.Int("regions", resolver.Size()))

	// 7. Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	var geocoder repository.GeocoderRepository
	if cfg.GeocoderEnabled() {
		geocoder = mapbox.NewGeocoder(&cfg.Mapbox, logger.Named(log, "mapbox"))
	} else {
		log.Warn("MAPBOX_ACCESS_TOKEN is not set, address search and reverse geocoding are disabled")
	}

	log.Info("Repositories initialized")

	// 8. Initialize use cases
	planUC := usecase.NewPlanUseCase(resolver, geocoder, cacheRepo, log)
	userUC := usecase.NewUserUseCase(userRepo, cacheRepo, log, cfg.Cache.UserCacheTTL)
	statsUC := usecase.NewStatsUseCase(resolver, userRepo, cacheRepo, log, cfg.Cache.StatsCacheTTL)
	mapUC := usecase.NewMapConfigUseCase()

	log.Info("Use cases initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Plan:  handler.NewPlanHandler(planUC, log),
		User:  handler.NewUserHandler(userUC, log),
		Stats: handler.NewStatsHandler(statsUC, log),
		Map:   handler.NewMapHandler(mapUC),
	})

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
