package cache

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/planinfo-service/internal/config"
)

const streamReadSlack = 2 * time.Second

// NewRedisStreams creates a dedicated client for stream consumers. Blocking
// XREADGROUP calls hold a connection, so they get their own pool with a read
// timeout longer than the block duration.
func NewRedisStreams(cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	client, err := connect(cfg, cfg.Worker.StreamReadTimeout+streamReadSlack)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis streams: %w", err)
	}

	logger.Info("Redis Streams connected",
		zap.String("addr", cfg.GetRedisAddr()),
		zap.Duration("block", cfg.Worker.StreamReadTimeout),
	)

	return client, nil
}
