package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/planinfo-service/internal/domain"
	"github.com/planinfo-service/internal/domain/repository"
)

const (
	statsKey   = "stats:current"
	lookupsKey = "stats:lookups"

	fieldTotal    = "total"
	fieldDefault  = "default"
	fieldErrors   = "errors"
	fieldRejected = "rejected"
	planPrefix    = "plan:"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}


// RecordLookup bumps the counters of one outcome in a single transaction.
// Rejected lookups never reached the resolver and are kept out of the total.
func (r *cacheRepository) RecordLookup(ctx context.Context, outcome domain.LookupOutcome) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if outcome.Rejected {
			pipe.HIncrBy(ctx, lookupsKey, fieldRejected, 1)
			return nil
		}

		pipe.HIncrBy(ctx, lookupsKey, fieldTotal, 1)
		switch {
		case outcome.Error:
			pipe.HIncrBy(ctx, lookupsKey, fieldErrors, 1)
		case outcome.Default:
			pipe.HIncrBy(ctx, lookupsKey, fieldDefault, 1)
		}
		if outcome.PlanID != "" {
			pipe.HIncrBy(ctx, lookupsKey, planPrefix+outcome.PlanID, 1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record lookup: %w", err)
	}
	return nil
}

func (r *cacheRepository) GetLookupCounters(ctx context.Context) (*domain.LookupCounters, error) {
	fields, err := r.client.HGetAll(ctx, lookupsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("get lookup counters: %w", err)
	}

	counters := &domain.LookupCounters{ByPlan: make(map[string]int64)}
	for field, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			r.logger.Warn("Skipping malformed lookup counter", zap.String("field", field), zap.String("value", raw))
			continue
		}

		switch {
		case field == fieldTotal:
			counters.Total = n
		case field == fieldDefault:
			counters.Default = n
		case field == fieldErrors:
			counters.Errors = n
		case field == fieldRejected:
			counters.Rejected = n
		case strings.HasPrefix(field, planPrefix):
			counters.ByPlan[strings.TrimPrefix(field, planPrefix)] = n
		}
	}

	return counters, nil
}

func (r *cacheRepository) GetStats(ctx context.Context) (*domain.Statistics, error) {
	data, err := r.Get(ctx, statsKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var stats domain.Statistics
	if err := json.Unmarshal(data, &stats); err != nil {
		r.logger.Error("Failed to unmarshal stats from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}

	return &stats, nil
}

func (r *cacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		r.logger.Error("Failed to marshal stats", zap.Error(err))
		return fmt.Errorf("marshal stats: %w", err)
	}

	return r.Set(ctx, statsKey, data, ttl)
}
