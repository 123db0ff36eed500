package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/planinfo-service/internal/domain"
	"github.com/planinfo-service/internal/domain/repository"
	"github.com/planinfo-service/internal/zoning"
	"go.uber.org/zap"
)

// StatsUseCase - service statistics backed by the database and lookup counters
type StatsUseCase struct {
	resolver  zoning.Resolver
	userRepo  repository.UserRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
	now       func() time.Time
}

// NewStatsUseCase creates a StatsUseCase
func NewStatsUseCase(
	resolver zoning.Resolver,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *StatsUseCase {
	return &StatsUseCase{
		resolver:  resolver,
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// GetStatistics returns cached statistics when available
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	cached, err := uc.cacheRepo.GetStats(ctx)
	if err == nil && cached != nil {
		uc.logger.Debug("Statistics fetched from cache")
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
	}

	return uc.RefreshStatistics(ctx)
}

// RefreshStatistics rebuilds statistics and refreshes the cache
func (uc *StatsUseCase) RefreshStatistics(ctx context.Context) (*domain.Statistics, error) {
	userCount, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	counters, err := uc.cacheRepo.GetLookupCounters(ctx)
	if err != nil {
		// counters are informational, report zeros rather than failing
		uc.logger.Warn("Failed to read lookup counters", zap.Error(err))
		counters = &domain.LookupCounters{ByPlan: map[string]int64{}}
	}

	stats := &domain.Statistics{
		RegionCount:        len(uc.resolver.Regions()),
		MunicipalityExtent: domain.MunicipalityExtent,
		UserCount:          userCount,
		Lookups:            *counters,
		GeneratedAt:        uc.now().UTC(),
	}

	if err := uc.cacheRepo.SetStats(ctx, stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache stats", zap.Error(err))
	}

	return stats, nil
}
