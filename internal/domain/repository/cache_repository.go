package repository

import (
	"context"
	"time"

	"github.com/planinfo-service/internal/domain"
)

// CacheRepository defines cache operations
type CacheRepository interface {
	// Get returns nil, nil on a cache miss
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key
	Delete(ctx context.Context, key string) error

	// RecordLookup increments lookup counters for one outcome
	RecordLookup(ctx context.Context, outcome domain.LookupOutcome) error

	// GetLookupCounters reads the lookup counters
	GetLookupCounters(ctx context.Context) (*domain.LookupCounters, error)

	// GetStats returns cached statistics, nil on miss
	GetStats(ctx context.Context) (*domain.Statistics, error)

	// SetStats caches statistics
	SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error
}
