package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/planinfo-service/internal/domain"
	"github.com/planinfo-service/internal/repository/cache"
)

func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   2, // separate from the stream tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	client.Del(ctx, "stats:lookups", "stats:current", "test:user:1")
	return client
}

func TestCacheRepository_GetSetDelete(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	repo := cache.NewCacheRepository(cache.NewRedisForTest(client, zap.NewNop()))
	ctx := context.Background()

	data, err := repo.Get(ctx, "test:user:1")
	require.NoError(t, err)
	assert.Nil(t, data, "miss must return nil, nil")

	require.NoError(t, repo.Set(ctx, "test:user:1", []byte(`{"name":"Kari"}`), time.Minute))

	data, err = repo.Get(ctx, "test:user:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Kari"}`, string(data))

	require.NoError(t, repo.Delete(ctx, "test:user:1"))

	data, err = repo.Get(ctx, "test:user:1")
	require.NoError(t, err)
	assert.Nil(t, data, "deleted key must read as a miss")
}

func TestCacheRepository_LookupCounters(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	repo := cache.NewCacheRepository(cache.NewRedisForTest(client, zap.NewNop()))
	ctx := context.Background()
	defer client.Del(ctx, "stats:lookups")

	empty, err := repo.GetLookupCounters(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Total)
	assert.NotNil(t, empty.ByPlan)

	outcomes := []domain.LookupOutcome{
		{PlanID: "4204-20210001"},
		{PlanID: "4204-20210001"},
		{PlanID: "4204-KDP-2019", Default: true},
		{Error: true},
		{Rejected: true},
	}
	for _, o := range outcomes {
		require.NoError(t, repo.RecordLookup(ctx, o))
	}

	counters, err := repo.GetLookupCounters(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LookupCounters{
		Total:    4,
		ByPlan:   map[string]int64{"4204-20210001": 2, "4204-KDP-2019": 1},
		Default:  1,
		Errors:   1,
		Rejected: 1,
	}, *counters)
}

func TestCacheRepository_Stats(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	repo := cache.NewCacheRepository(cache.NewRedisForTest(client, zap.NewNop()))
	ctx := context.Background()
	defer client.Del(ctx, "stats:current")

	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Nil(t, stats)

	in := &domain.Statistics{
		RegionCount:        5,
		MunicipalityExtent: domain.MunicipalityExtent,
		UserCount:          3,
		Lookups:            domain.LookupCounters{Total: 1, ByPlan: map[string]int64{"x": 1}},
		GeneratedAt:        time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SetStats(ctx, in, time.Minute))

	out, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, in.RegionCount, out.RegionCount)
	assert.Equal(t, in.Lookups, out.Lookups)
	assert.True(t, in.GeneratedAt.Equal(out.GeneratedAt))
}
